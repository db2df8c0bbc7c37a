package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PassPayload is the content encoded in a registration QR pass.
type PassPayload struct {
	RegistrationID uuid.UUID
	EventID        uuid.UUID
	Signature      string
}

func passSignature(registrationID, eventID uuid.UUID, email, secret string) string {
	data := fmt.Sprintf("%s:%s:%s", registrationID.String(), eventID.String(), strings.ToLower(email))
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func EncodePass(registrationID, eventID uuid.UUID, email, secret string) string {
	return fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registrationID.String(),
		eventID.String(),
		passSignature(registrationID, eventID, email, secret),
	)
}

func DecodePass(data string) (PassPayload, error) {
	parts := strings.Split(data, ";")
	if len(parts) != 3 ||
		!strings.HasPrefix(parts[0], "registration:") ||
		!strings.HasPrefix(parts[1], "event:") ||
		!strings.HasPrefix(parts[2], "signature:") {
		return PassPayload{}, fmt.Errorf("invalid pass format")
	}

	registrationID, err := uuid.Parse(strings.TrimPrefix(parts[0], "registration:"))
	if err != nil {
		return PassPayload{}, fmt.Errorf("invalid registration id: %w", err)
	}
	eventID, err := uuid.Parse(strings.TrimPrefix(parts[1], "event:"))
	if err != nil {
		return PassPayload{}, fmt.Errorf("invalid event id: %w", err)
	}

	return PassPayload{
		RegistrationID: registrationID,
		EventID:        eventID,
		Signature:      strings.TrimPrefix(parts[2], "signature:"),
	}, nil
}

func VerifyPass(p PassPayload, email, secret string) bool {
	expected := passSignature(p.RegistrationID, p.EventID, email, secret)
	return hmac.Equal([]byte(expected), []byte(p.Signature))
}
