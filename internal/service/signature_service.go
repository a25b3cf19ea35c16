package service

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"shopfront-api/internal/core/domain"
	"shopfront-api/pkg/urlenc"
)

// MD5SignatureService implements ports.SignatureService with PayFast's
// MD5 signature scheme.
type MD5SignatureService struct {
	passphrase string
}

// NewMD5SignatureService creates a signature service bound to the merchant
// passphrase.
func NewMD5SignatureService(passphrase string) *MD5SignatureService {
	return &MD5SignatureService{passphrase: passphrase}
}

// canonical builds key=value&... from non-empty fields in their given
// order, values trimmed and component-encoded. With usePassphrase the
// passphrase is appended as a final &passphrase= pair.
func (s *MD5SignatureService) canonical(fields domain.Fields, usePassphrase bool) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(urlenc.Component(strings.TrimSpace(f.Value)))
		b.WriteByte('&')
	}

	out := strings.TrimSuffix(b.String(), "&")
	if usePassphrase {
		out += "&passphrase=" + urlenc.Component(strings.TrimSpace(s.passphrase))
	}
	return out
}

// Sign returns the lowercase hex MD5 of the canonical string.
func (s *MD5SignatureService) Sign(fields domain.Fields, usePassphrase bool) string {
	sum := md5.Sum([]byte(s.canonical(fields, usePassphrase)))
	return hex.EncodeToString(sum[:])
}
