package storage

import (
	"fmt"
	"strings"
	"time"
)

// Record is a human readable view of one badger entry, used by the inspectors.
type Record struct {
	Kind   string
	ID     string
	At     time.Time
	Detail string
}

// Describe decodes a raw entry according to its key family.
// Index entries only carry the id of the record they point to.
func Describe(key string, val []byte) (Record, error) {
	family, rest, _ := strings.Cut(key, ":")
	switch family {
	case "msg":
		m, err := decodeMessage(val)
		if err != nil {
			return Record{Kind: "MESSAGE", ID: rest}, err
		}
		detail := fmt.Sprintf("%s -> %s: %s", m.SenderID, m.ReceiverID, m.Text)
		if !m.IsRead {
			detail += " (unread)"
		}
		return Record{Kind: "MESSAGE", ID: m.ID, At: m.At, Detail: detail}, nil
	case "inbox", "thread":
		return Record{Kind: strings.ToUpper(family), ID: string(val), Detail: rest}, nil
	case "profile":
		p, err := decodeProfile(val)
		if err != nil {
			return Record{Kind: "PROFILE", ID: rest}, err
		}
		return Record{Kind: "PROFILE", ID: p.UserID, Detail: fmt.Sprintf("%s %v %v", p.Name, p.Instruments, p.Genres)}, nil
	case "typing":
		s, err := decodeTyping(val)
		if err != nil {
			return Record{Kind: "TYPING", ID: rest}, err
		}
		return Record{Kind: "TYPING", ID: rest, At: s.UpdatedAt, Detail: fmt.Sprintf("%s -> %s typing=%t", s.From, s.To, s.IsTyping)}, nil
	default:
		return Record{Kind: "RAW", ID: key, Detail: fmt.Sprintf("Size: %d bytes", len(val))}, nil
	}
}
