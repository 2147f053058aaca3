package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ConversationMetrics struct {
	StartedTotal   prometheus.Counter
	CompletedTotal *prometheus.CounterVec
}

type UnderwritingMetrics struct {
	DecisionsTotal      *prometheus.CounterVec
	BureauFailuresTotal *prometheus.CounterVec
}

type LetterMetrics struct {
	IssuedTotal prometheus.Counter
	FailedTotal prometheus.Counter
}

var (
	Conversation = ConversationMetrics{
		StartedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_origination_conversations_started_total",
				Help: "Total number of chat conversations started.",
			},
		),
		CompletedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_origination_conversations_completed_total",
				Help: "Total number of chat conversations reaching a terminal state.",
			},
			[]string{"outcome"},
		),
	}

	Underwriting = UnderwritingMetrics{
		DecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_origination_underwriting_decisions_total",
				Help: "Total number of underwriting decisions by status.",
			},
			[]string{"status"},
		),
		BureauFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_origination_bureau_lookup_failures_total",
				Help: "Total number of failed remote bureau lookups after retries.",
			},
			[]string{"endpoint"},
		),
	}

	Letter = LetterMetrics{
		IssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_origination_sanction_letters_issued_total",
				Help: "Total number of sanction letters rendered.",
			},
		),
		FailedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_origination_sanction_letters_failed_total",
				Help: "Total number of sanction letter rendering failures.",
			},
		),
	}
)

func RecordConversationStarted() {
	Conversation.StartedTotal.Inc()
}

func RecordConversationCompleted(outcome string) {
	Conversation.CompletedTotal.WithLabelValues(outcome).Inc()
}

func RecordDecision(status string) {
	Underwriting.DecisionsTotal.WithLabelValues(status).Inc()
}

func RecordBureauFailure(endpoint string) {
	Underwriting.BureauFailuresTotal.WithLabelValues(endpoint).Inc()
}

func RecordLetterIssued() {
	Letter.IssuedTotal.Inc()
}

func RecordLetterFailed() {
	Letter.FailedTotal.Inc()
}
