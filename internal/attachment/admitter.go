package attachment

import (
	"fmt"
	"os"
	"strings"

	"github.com/quizhub/class-notifier/internal/domain"
)

// DefaultMaxBytes is the admission ceiling for local attachments: 20 MiB.
const DefaultMaxBytes int64 = 20 << 20

// Admitter classifies a caller-supplied attachment reference before any
// per-recipient work begins, so a doomed attachment aborts the request
// early rather than after partial sends.
type Admitter struct {
	maxBytes int64
}

func NewAdmitter(maxBytes int64) *Admitter {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Admitter{maxBytes: maxBytes}
}

// Admit resolves a reference to one of the three attachment forms.
//
//   - empty reference → AttachmentNone
//   - http:// or https:// prefix → AttachmentRemote, admitted unconditionally;
//     the link is embedded in the outgoing message and never fetched
//   - anything else is a local path: it must exist and fit under the ceiling.
//     The size is recorded but the content is read later, at composition.
func (a *Admitter) Admit(ref string) (domain.Attachment, error) {
	if ref == "" {
		return domain.Attachment{Kind: domain.AttachmentNone}, nil
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return domain.Attachment{Kind: domain.AttachmentRemote, URL: ref}, nil
	}

	info, err := os.Stat(ref)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, ref)
	}
	if info.Size() > a.maxBytes {
		return domain.Attachment{}, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			domain.ErrAttachmentTooLarge, ref, info.Size(), a.maxBytes)
	}

	return domain.Attachment{Kind: domain.AttachmentLocal, Path: ref, Size: info.Size()}, nil
}
