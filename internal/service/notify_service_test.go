package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/quizhub/class-notifier/internal/attachment"
	"github.com/quizhub/class-notifier/internal/dispatch"
	"github.com/quizhub/class-notifier/internal/domain"
	"github.com/quizhub/class-notifier/internal/mailer"
	"github.com/quizhub/class-notifier/internal/roster"
	"github.com/quizhub/class-notifier/internal/service"
)

// noopPacer avoids real delays in service-level tests.
type noopPacer struct{}

func (noopPacer) Wait(_ context.Context) error { return nil }

func newService() (*service.NotifyService, *roster.MockResolver, *mailer.MockTransport) {
	resolver := roster.NewMockResolver()
	transport := mailer.NewMockTransport()
	engine := dispatch.NewEngine(transport, func() dispatch.Pacer { return noopPacer{} },
		time.Second, zap.NewNop(), dispatch.Hooks{})
	admitter := attachment.NewAdmitter(attachment.DefaultMaxBytes)
	svc := service.NewNotifyService("noreply@quizhub.io", "QuizHub",
		resolver, admitter, engine, zap.NewNop(), nil)
	return svc, resolver, transport
}

func TestSendQuizNotice_EndToEnd(t *testing.T) {
	svc, _, transport := newService()

	err := svc.SendQuizNotice(context.Background(), domain.QuizNoticeRequest{
		TeacherName:  "Alice",
		QuizCode:     "Q42",
		StudentEmail: "s@ex.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := transport.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected exactly one transport submission, got %d", len(sent))
	}
	msg := sent[0]
	if msg.Subject != "Regarding Quiz Q42" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Alice") || !strings.Contains(msg.Body, "s@ex.com") {
		t.Fatalf("body should contain teacher name and student address, got %q", msg.Body)
	}
	if msg.To != "s@ex.com" {
		t.Fatalf("expected to=s@ex.com, got %s", msg.To)
	}
}

func TestSendQuizNotice_MissingFieldFailsFast(t *testing.T) {
	svc, resolver, transport := newService()

	reqs := []domain.QuizNoticeRequest{
		{QuizCode: "Q42", StudentEmail: "s@ex.com"},
		{TeacherName: "Alice", StudentEmail: "s@ex.com"},
		{TeacherName: "Alice", QuizCode: "Q42"},
	}
	for _, req := range reqs {
		if err := svc.SendQuizNotice(context.Background(), req); !errors.Is(err, domain.ErrMissingField) {
			t.Fatalf("expected ErrMissingField for %+v, got %v", req, err)
		}
	}

	// Fail fast means zero observable side effects.
	if resolver.Calls != 0 {
		t.Fatalf("expected no resolver calls, got %d", resolver.Calls)
	}
	if len(transport.Sent()) != 0 {
		t.Fatal("expected no transport submissions")
	}
}

var broadcastReq = domain.ClassBroadcastRequest{
	TeacherName:  "Alice",
	TeacherEmail: "alice@ex.com",
	ClassName:    "Algebra I",
	ClassID:      "class-7",
	QuizID:       "quiz-1",
	QuizName:     "Linear Equations",
	QuizCode:     "Q42",
}

func TestBroadcastQuiz_ResolvesAndDispatches(t *testing.T) {
	svc, resolver, transport := newService()
	resolver.Enroll("class-7",
		domain.Recipient{Email: "a@ex.com", Role: "student"},
		domain.Recipient{Email: "b@ex.com", Role: "student"},
		domain.Recipient{Email: "c@ex.com", Role: "student"},
	)

	result, err := svc.BroadcastQuiz(context.Background(), broadcastReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Attempted != 3 || result.Succeeded != 3 {
		t.Fatalf("expected 3/3, got %d/%d", result.Succeeded, result.Attempted)
	}

	// Store order preserved: sends happen in enrollment order.
	sent := transport.Sent()
	if sent[0].To != "a@ex.com" || sent[1].To != "b@ex.com" || sent[2].To != "c@ex.com" {
		t.Fatalf("expected deterministic send order, got %+v", sent)
	}
	if !strings.Contains(sent[0].Body, "Q42") {
		t.Fatalf("broadcast body should carry the access code, got %q", sent[0].Body)
	}
}

func TestBroadcastQuiz_PartialFailureReported(t *testing.T) {
	svc, resolver, transport := newService()
	resolver.Enroll("class-7",
		domain.Recipient{Email: "a@ex.com"},
		domain.Recipient{Email: "b@ex.com"},
		domain.Recipient{Email: "c@ex.com"},
	)
	transport.FailFor["b@ex.com"] = errors.New("mailbox full")

	result, err := svc.BroadcastQuiz(context.Background(), broadcastReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 2 || len(result.Failures) != 1 {
		t.Fatalf("expected 2 succeeded and 1 failure, got %+v", result)
	}
	if result.Failures[0].Recipient != "b@ex.com" {
		t.Fatalf("expected b@ex.com failed, got %+v", result.Failures)
	}
}

func TestBroadcastQuiz_EmptyRosterVsStoreDown(t *testing.T) {
	// Empty roster: distinct "no recipients" condition.
	svc, _, transport := newService()
	_, err := svc.BroadcastQuiz(context.Background(), broadcastReq)
	if !errors.Is(err, domain.ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}
	if len(transport.Sent()) != 0 {
		t.Fatal("no sends expected on empty roster")
	}

	// Unreachable store: different error kind, batch aborted.
	svc2, resolver2, _ := newService()
	resolver2.ResolveErr = domain.ErrStoreUnavailable
	_, err = svc2.BroadcastQuiz(context.Background(), broadcastReq)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrNoRecipients) {
		t.Fatal("store failure must be distinct from an empty roster")
	}
}

func TestBroadcastQuiz_MissingFieldSkipsResolution(t *testing.T) {
	svc, resolver, _ := newService()

	bad := broadcastReq
	bad.ClassID = ""
	_, err := svc.BroadcastQuiz(context.Background(), bad)
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if resolver.Calls != 0 {
		t.Fatalf("validation must run before resolution, got %d resolver calls", resolver.Calls)
	}
}

func TestSendClassInvite(t *testing.T) {
	svc, _, transport := newService()

	err := svc.SendClassInvite(context.Background(), domain.ClassInviteRequest{
		StudentEmail: "new@ex.com",
		TeacherName:  "Bob",
		TeacherEmail: "bob@ex.com",
		ClassTitle:   "Geometry",
		ClassCode:    "GEO-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := transport.Sent()
	if len(sent) != 1 || sent[0].To != "new@ex.com" {
		t.Fatalf("expected one invite to new@ex.com, got %+v", sent)
	}
	if !strings.Contains(sent[0].Subject, "Geometry") {
		t.Fatalf("invite subject should name the class, got %q", sent[0].Subject)
	}
}

func TestSendLecturePacket_BadAttachmentAbortsBeforeSend(t *testing.T) {
	svc, _, transport := newService()

	err := svc.SendLecturePacket(context.Background(), domain.LecturePacketRequest{
		TeacherName:  "Alice",
		TeacherEmail: "alice@ex.com",
		QuizName:     "Calculus",
		StudentName:  "Sam",
		StudentEmail: "sam@ex.com",
		Body:         "Notes attached.",
		Attachment:   "/nonexistent/notes.pdf",
	})
	if !errors.Is(err, domain.ErrAttachmentNotFound) {
		t.Fatalf("expected ErrAttachmentNotFound, got %v", err)
	}
	if len(transport.Sent()) != 0 {
		t.Fatal("admission failure must abort before any send")
	}
}

func TestSendLecturePacket_RemoteAttachment(t *testing.T) {
	svc, _, transport := newService()

	err := svc.SendLecturePacket(context.Background(), domain.LecturePacketRequest{
		TeacherName:  "Alice",
		TeacherEmail: "alice@ex.com",
		QuizName:     "Calculus",
		StudentName:  "Sam",
		StudentEmail: "sam@ex.com",
		Body:         "Notes linked below.",
		Attachment:   "https://ex.com/notes.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := transport.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one submission, got %d", len(sent))
	}
	if !strings.Contains(sent[0].Body, "https://ex.com/notes.pdf") {
		t.Fatalf("expected remote link embedded, got %q", sent[0].Body)
	}
}

func TestSendLecturePacket_TransportFailureSurfaced(t *testing.T) {
	svc, _, transport := newService()
	transport.SendErr = errors.New("connection refused")

	err := svc.SendLecturePacket(context.Background(), domain.LecturePacketRequest{
		TeacherName:  "Alice",
		TeacherEmail: "alice@ex.com",
		QuizName:     "Calculus",
		StudentName:  "Sam",
		StudentEmail: "sam@ex.com",
		Body:         "Notes.",
	})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected transport error surfaced, got %v", err)
	}
}
