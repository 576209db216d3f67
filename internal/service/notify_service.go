package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/quizhub/class-notifier/internal/attachment"
	"github.com/quizhub/class-notifier/internal/compose"
	"github.com/quizhub/class-notifier/internal/dispatch"
	"github.com/quizhub/class-notifier/internal/domain"
	"github.com/quizhub/class-notifier/internal/roster"
)

// NotifyService coordinates the resolver, admitter, composer and engine.
// Each method is one boundary operation: validate the payload first (fail
// fast, zero side effects), then admit the attachment if any, resolve
// recipients if class-wide, and hand the template to the dispatch engine.
// HTTP handlers depend on this service, not on the collaborators.
type NotifyService struct {
	from     string
	fromName string
	resolver roster.Resolver
	admitter *attachment.Admitter
	engine   *dispatch.Engine
	logger   *zap.Logger

	// observeBatch records resolved roster sizes for metrics (nil = no-op).
	observeBatch func(int)
}

func NewNotifyService(
	from, fromName string,
	resolver roster.Resolver,
	admitter *attachment.Admitter,
	engine *dispatch.Engine,
	logger *zap.Logger,
	observeBatch func(int),
) *NotifyService {
	if observeBatch == nil {
		observeBatch = func(int) {}
	}
	return &NotifyService{
		from:         from,
		fromName:     fromName,
		resolver:     resolver,
		admitter:     admitter,
		engine:       engine,
		logger:       logger,
		observeBatch: observeBatch,
	}
}

// SendQuizNotice delivers a single quiz notification to one student.
func (s *NotifyService) SendQuizNotice(ctx context.Context, req domain.QuizNoticeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	tmpl := compose.QuizNotice(s.from, s.fromName, req)
	return s.engine.DispatchOne(ctx, tmpl, domain.Recipient{Email: req.StudentEmail, Role: "student"})
}

// BroadcastQuiz resolves the class roster and dispatches the announcement
// to every enrolled student, paced and with per-recipient isolation.
// Resolution failure aborts the batch before any send; an empty roster is
// the distinct domain.ErrNoRecipients condition, not an empty success.
func (s *NotifyService) BroadcastQuiz(ctx context.Context, req domain.ClassBroadcastRequest) (*domain.DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	recipients, err := s.resolver.Resolve(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	s.observeBatch(len(recipients))

	s.logger.Info("class roster resolved",
		zap.String("class_id", req.ClassID),
		zap.Int("recipients", len(recipients)))

	tmpl := compose.ClassBroadcast(s.from, s.fromName, req)
	return s.engine.DispatchAll(ctx, tmpl, recipients), nil
}

// SendClassInvite delivers a class invitation to one student.
func (s *NotifyService) SendClassInvite(ctx context.Context, req domain.ClassInviteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	tmpl := compose.ClassInvite(s.from, s.fromName, req)
	return s.engine.DispatchOne(ctx, tmpl, domain.Recipient{Email: req.StudentEmail, Role: "student"})
}

// SendLecturePacket admits the optional attachment, then delivers lecture
// material to one student. Admission runs before any side-effecting work so
// a bad attachment aborts the request with nothing sent.
func (s *NotifyService) SendLecturePacket(ctx context.Context, req domain.LecturePacketRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	att, err := s.admitter.Admit(req.Attachment)
	if err != nil {
		return err
	}

	tmpl := compose.LecturePacket(s.from, s.fromName, req, att)
	return s.engine.DispatchOne(ctx, tmpl, domain.Recipient{
		Email: req.StudentEmail,
		Name:  req.StudentName,
		Role:  "student",
	})
}
