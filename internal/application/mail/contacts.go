package mail

import (
	netmail "net/mail"
	"strings"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// contactIndex emails de clientes y proveedores en minúsculas.
type contactIndex map[string][]entity.ContactMatch

func newContactIndex(clients []*entity.Client, suppliers []*entity.Supplier) contactIndex {
	idx := make(contactIndex)
	for _, c := range clients {
		idx.add(c.Email, entity.ContactMatch{Kind: entity.ContactKindClient, ID: c.ID, Name: c.Name, Email: c.Email})
	}
	for _, s := range suppliers {
		idx.add(s.Email, entity.ContactMatch{Kind: entity.ContactKindSupplier, ID: s.ID, Name: s.CompanyName, Email: s.Email})
	}
	return idx
}

func (idx contactIndex) add(email string, m entity.ContactMatch) {
	key := normalizeAddress(email)
	if key == "" {
		return
	}
	idx[key] = append(idx[key], m)
}

// Match devuelve los contactos cuyo email aparece en From, To o Cc. Sin duplicados.
func (idx contactIndex) Match(msg entity.EmailMessage) []entity.ContactMatch {
	out := make([]entity.ContactMatch, 0)
	seen := make(map[string]bool)
	addrs := append([]string{msg.From}, msg.To...)
	addrs = append(addrs, msg.Cc...)
	for _, a := range addrs {
		for _, m := range idx[normalizeAddress(a)] {
			key := m.Kind + "/" + m.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

// normalizeAddress extrae la dirección de "Nombre <a@b.c>" y la pasa a minúsculas.
func normalizeAddress(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if addr, err := netmail.ParseAddress(s); err == nil {
		return strings.ToLower(addr.Address)
	}
	if i := strings.LastIndex(s, "<"); i >= 0 {
		s = strings.TrimSuffix(s[i+1:], ">")
	}
	return strings.ToLower(strings.TrimSpace(s))
}
