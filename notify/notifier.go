package notify

import (
	"context"

	"go.uber.org/zap"

	"caseflow/beneficiary"
)

// Sender delivers a "you were transferred" notice to a beneficiary. Callers
// dispatch fire-and-forget; a delivery failure never fails the command that
// triggered it.
type Sender interface {
	SendTransferNotice(ctx context.Context, b beneficiary.Beneficiary) error
}

// LogSender records notices to the log instead of delivering them. Used when
// no message broker is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendTransferNotice(_ context.Context, b beneficiary.Beneficiary) error {
	s.log.Info("transfer notice",
		zap.String("beneficiary_id", b.ID),
		zap.String("counselor_id", b.CounselorID),
	)
	return nil
}
