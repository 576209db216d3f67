package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quizhub/class-notifier/internal/domain"
)

// Template constructors render the per-kind subject and body with literal
// interpolation of the request fields. Anything that varies per recipient
// is left to Compose.

// QuizNotice builds the template for a single quiz notification.
func QuizNotice(from, fromName string, req domain.QuizNoticeRequest) domain.Template {
	return domain.Template{
		Kind:     domain.KindQuizNotice,
		From:     from,
		FromName: fromName,
		Subject:  fmt.Sprintf("Regarding Quiz %s", req.QuizCode),
		Body: fmt.Sprintf(
			"Hello %s,\n\nThis is a notification regarding Quiz %s. Please reach out to %s for further details.",
			req.TeacherName, req.QuizCode, req.StudentEmail),
	}
}

// ClassBroadcast builds the template shared by every student in the class.
func ClassBroadcast(from, fromName string, req domain.ClassBroadcastRequest) domain.Template {
	return domain.Template{
		Kind:     domain.KindClassBroadcast,
		From:     from,
		FromName: fromName,
		Subject:  fmt.Sprintf("New Quiz %s for %s", req.QuizName, req.ClassName),
		Body: fmt.Sprintf(
			"Hello,\n\nA new quiz \"%s\" has been assigned to your class %s.\nAccess code: %s\n\nFor any questions, contact %s at %s.",
			req.QuizName, req.ClassName, req.QuizCode, req.TeacherName, req.TeacherEmail),
	}
}

// ClassInvite builds the template for inviting one student to a class.
func ClassInvite(from, fromName string, req domain.ClassInviteRequest) domain.Template {
	return domain.Template{
		Kind:     domain.KindClassInvite,
		From:     from,
		FromName: fromName,
		Subject:  fmt.Sprintf("Invitation to join %s", req.ClassTitle),
		Body: fmt.Sprintf(
			"Hello,\n\n%s (%s) has invited you to join the class \"%s\".\nUse class code %s to join.",
			req.TeacherName, req.TeacherEmail, req.ClassTitle, req.ClassCode),
	}
}

// LecturePacket builds the template for sending lecture material, carrying
// the already-admitted attachment.
func LecturePacket(from, fromName string, req domain.LecturePacketRequest, att domain.Attachment) domain.Template {
	return domain.Template{
		Kind:     domain.KindLecturePacket,
		From:     from,
		FromName: fromName,
		Subject:  fmt.Sprintf("Lecture Material: %s", req.QuizName),
		Body: fmt.Sprintf(
			"Hello %s,\n\n%s\n\nRegards,\n%s (%s)",
			req.StudentName, req.Body, req.TeacherName, req.TeacherEmail),
		Attachment: att,
	}
}

// Compose builds the immutable per-recipient message from a template.
// Pure except for the local-attachment read, which is deliberately deferred
// to this point so no file handle or payload is held across a whole batch.
//
// Required template fields have been validated at the boundary; Compose
// still fails with ErrMissingField defensively rather than sending a
// message whose meaning changed through a silently empty field.
func Compose(tmpl domain.Template, r domain.Recipient) (*domain.ComposedMessage, error) {
	switch {
	case tmpl.From == "":
		return nil, fmt.Errorf("%w: sender", domain.ErrMissingField)
	case tmpl.Subject == "":
		return nil, fmt.Errorf("%w: subject", domain.ErrMissingField)
	case tmpl.Body == "":
		return nil, fmt.Errorf("%w: body", domain.ErrMissingField)
	case r.Email == "":
		return nil, fmt.Errorf("%w: recipient", domain.ErrMissingField)
	}

	msg := &domain.ComposedMessage{
		From:    tmpl.From,
		To:      r.Email,
		Subject: tmpl.Subject,
		Body:    tmpl.Body,
	}

	switch tmpl.Attachment.Kind {
	case domain.AttachmentRemote:
		// Never fetched: the link itself is the attachment.
		msg.Body += fmt.Sprintf("\n\nAttachment: %s", tmpl.Attachment.URL)
	case domain.AttachmentLocal:
		data, err := os.ReadFile(tmpl.Attachment.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, tmpl.Attachment.Path)
		}
		msg.InlineName = filepath.Base(tmpl.Attachment.Path)
		msg.Inline = data
	}

	return msg, nil
}
