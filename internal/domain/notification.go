package domain

import "fmt"

// Kind identifies which notification type is being dispatched.
// It labels metrics and log lines; the composer picks wording per kind.
type Kind string

const (
	KindQuizNotice     Kind = "quiz_notice"
	KindClassBroadcast Kind = "class_broadcast"
	KindClassInvite    Kind = "class_invite"
	KindLecturePacket  Kind = "lecture_packet"
)

// Recipient is one addressable identity resolved from the roster store.
// Recipients are materialized fresh per dispatch request and never cached.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AttachmentKind tags the Attachment union.
type AttachmentKind int

const (
	AttachmentNone AttachmentKind = iota
	AttachmentRemote
	AttachmentLocal
)

// Attachment is the admitted form of a caller-supplied attachment reference.
// Remote references are embedded as links and never fetched; local references
// carry the byte size measured at admission time. Admission is a
// point-in-time check: the file itself is read later, at composition.
type Attachment struct {
	Kind AttachmentKind
	URL  string // set for AttachmentRemote
	Path string // set for AttachmentLocal
	Size int64  // bytes, set for AttachmentLocal
}

// Template holds everything about a notification that does not vary per
// recipient: the configured sender identity, the rendered subject and body,
// and the admitted attachment. Required fields are validated at the boundary;
// the composer re-checks defensively before building a message.
type Template struct {
	Kind       Kind
	From       string
	FromName   string
	Subject    string
	Body       string
	Attachment Attachment
}

// ComposedMessage is the immutable per-recipient unit handed to the mail
// transport. Built once per recipient, owned by the dispatch engine for the
// duration of one send, discarded after.
type ComposedMessage struct {
	From    string
	To      string
	Subject string
	Body    string

	// Inline payload for local attachments, read at composition time.
	InlineName string
	Inline     []byte
}

// SendFailure records one recipient the engine could not deliver to.
type SendFailure struct {
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// DispatchResult is the aggregate outcome of one batch.
// Succeeded never exceeds Attempted; Failures carries one entry per
// recipient that failed composition or transport.
type DispatchResult struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failures  []SendFailure `json:"failures,omitempty"`
}

// FullSuccess reports whether every attempted send was delivered.
func (r *DispatchResult) FullSuccess() bool {
	return r.Succeeded == r.Attempted && len(r.Failures) == 0
}

// ---- inbound request payloads ----

// QuizNoticeRequest is the payload for a single quiz notification.
type QuizNoticeRequest struct {
	TeacherName  string `json:"teacher_name"`
	QuizCode     string `json:"quiz_code"`
	StudentEmail string `json:"student_email"`
}

func (r *QuizNoticeRequest) Validate() error {
	return requireFields([]field{
		{"teacher_name", r.TeacherName},
		{"quiz_code", r.QuizCode},
		{"student_email", r.StudentEmail},
	})
}

// ClassBroadcastRequest is the payload for a class-wide quiz announcement.
type ClassBroadcastRequest struct {
	TeacherName  string `json:"teacher_name"`
	TeacherEmail string `json:"teacher_email"`
	ClassName    string `json:"class_name"`
	ClassID      string `json:"class_id"`
	QuizID       string `json:"quiz_id"`
	QuizName     string `json:"quiz_name"`
	QuizCode     string `json:"quiz_code"`
}

func (r *ClassBroadcastRequest) Validate() error {
	return requireFields([]field{
		{"teacher_name", r.TeacherName},
		{"teacher_email", r.TeacherEmail},
		{"class_name", r.ClassName},
		{"class_id", r.ClassID},
		{"quiz_id", r.QuizID},
		{"quiz_name", r.QuizName},
		{"quiz_code", r.QuizCode},
	})
}

// ClassInviteRequest is the payload for inviting one student to a class.
type ClassInviteRequest struct {
	StudentEmail string `json:"student_email"`
	TeacherName  string `json:"teacher_name"`
	TeacherEmail string `json:"teacher_email"`
	ClassTitle   string `json:"class_title"`
	ClassCode    string `json:"class_code"`
}

func (r *ClassInviteRequest) Validate() error {
	return requireFields([]field{
		{"student_email", r.StudentEmail},
		{"teacher_name", r.TeacherName},
		{"teacher_email", r.TeacherEmail},
		{"class_title", r.ClassTitle},
		{"class_code", r.ClassCode},
	})
}

// LecturePacketRequest is the payload for sending lecture material to one
// student. Attachment is an optional local path or http(s) URL.
type LecturePacketRequest struct {
	TeacherName  string `json:"teacher_name"`
	TeacherEmail string `json:"teacher_email"`
	QuizName     string `json:"quiz_name"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	Body         string `json:"body"`
	Attachment   string `json:"attachment,omitempty"`
}

func (r *LecturePacketRequest) Validate() error {
	return requireFields([]field{
		{"teacher_name", r.TeacherName},
		{"teacher_email", r.TeacherEmail},
		{"quiz_name", r.QuizName},
		{"student_name", r.StudentName},
		{"student_email", r.StudentEmail},
		{"body", r.Body},
	})
}

type field struct {
	name, value string
}

// requireFields returns ErrMissingField naming the first empty field in
// payload order, so the caller knows exactly what to correct.
func requireFields(fields []field) error {
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}
