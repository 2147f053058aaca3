package conversation

import "context"

// DocumentVerifier checks an uploaded salary slip against the EMI ceiling for
// a pending application. A real implementation would parse the document; the
// stub below stands in until one exists.
type DocumentVerifier interface {
	VerifySalarySlip(ctx context.Context, session *Session, reference string) (bool, error)
}

// StubDocumentVerifier accepts every uploaded document. It is both the
// production default and the test double.
type StubDocumentVerifier struct{}

var _ DocumentVerifier = StubDocumentVerifier{}

func (StubDocumentVerifier) VerifySalarySlip(_ context.Context, _ *Session, _ string) (bool, error) {
	return true, nil
}
