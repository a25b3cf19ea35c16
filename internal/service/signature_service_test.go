package service

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"shopfront-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func payfastFields() domain.Fields {
	return domain.Fields{
		{Key: domain.FieldMerchantID, Value: "10000100"},
		{Key: domain.FieldMerchantKey, Value: "46f0cd694581a"},
		{Key: domain.FieldEmailAddress, Value: "buyer@example.com"},
		{Key: domain.FieldAmount, Value: "100.00"},
		{Key: domain.FieldItemName, Value: "Blue Mug"},
	}
}

func TestMD5SignatureService_SimpleFieldSet(t *testing.T) {
	svc := NewMD5SignatureService("ignored")
	fields := domain.Fields{
		{Key: "merchant_id", Value: "1"},
		{Key: "amount", Value: "10.00"},
	}

	assert.Equal(t, "merchant_id=1&amount=10.00", svc.canonical(fields, false))
	assert.Equal(t, md5Hex("merchant_id=1&amount=10.00"), svc.Sign(fields, false))
	assert.Equal(t, "400c8a88e284ff45e66dcc1886ef345b", svc.Sign(fields, false))
}

func TestMD5SignatureService_WithPassphrase(t *testing.T) {
	svc := NewMD5SignatureService("  jt7NOE43FZPn ")

	canonical := svc.canonical(payfastFields(), true)
	assert.Equal(t,
		"merchant_id=10000100&merchant_key=46f0cd694581a&email_address=buyer%40example.com&amount=100.00&item_name=Blue+Mug&passphrase=jt7NOE43FZPn",
		canonical,
	)
	assert.Equal(t, "e9d7624d98bcb36c16b6b327182ac4f2", svc.Sign(payfastFields(), true))
	assert.Equal(t, "622d34dec18790e481b782c3fd77bfaa", svc.Sign(payfastFields(), false))
}

func TestMD5SignatureService_EmptyFieldsExcluded(t *testing.T) {
	svc := NewMD5SignatureService("")

	withEmpty := domain.Fields{
		{Key: "merchant_id", Value: "1"},
		{Key: "name_first", Value: ""},
		{Key: "amount", Value: "10.00"},
	}
	without := domain.Fields{
		{Key: "merchant_id", Value: "1"},
		{Key: "amount", Value: "10.00"},
	}

	assert.Equal(t, svc.Sign(without, false), svc.Sign(withEmpty, false))
	assert.NotContains(t, svc.canonical(withEmpty, false), "name_first")
}

func TestMD5SignatureService_TrimsAndEncodesValues(t *testing.T) {
	svc := NewMD5SignatureService("")
	fields := domain.Fields{
		{Key: "item_name", Value: "  Tea & Biscuits (x2) "},
		{Key: "blank", Value: "   "},
	}

	assert.Equal(t, "item_name=Tea+%26+Biscuits+(x2)&blank=", svc.canonical(fields, false))
}

func TestMD5SignatureService_OrderMatters(t *testing.T) {
	svc := NewMD5SignatureService("")
	a := domain.Fields{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	b := domain.Fields{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}

	assert.NotEqual(t, svc.Sign(a, false), svc.Sign(b, false))
}

func TestMD5SignatureService_PassphraseOnly(t *testing.T) {
	svc := NewMD5SignatureService("my secret")

	assert.Equal(t, "&passphrase=my+secret", svc.canonical(nil, true))
	assert.Equal(t, "9c84cf8d3f643df3d8b4ec200df70c3c", svc.Sign(nil, true))
}

func TestMD5SignatureService_Deterministic(t *testing.T) {
	svc := NewMD5SignatureService("p")
	assert.Equal(t, svc.Sign(payfastFields(), true), svc.Sign(payfastFields(), true))
	assert.Regexp(t, `^[0-9a-f]{32}$`, svc.Sign(payfastFields(), true))
}
