package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/domain"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const (
	bearerScheme = "Bearer"

	msgNoToken      = "No token provided!"
	msgUnauthorized = "Unauthorized!"
)

// Outcome is the terminal state of gating one request.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeNoCredential
	OutcomeInvalidCredential
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeNoCredential:
		return "no_credential"
	case OutcomeInvalidCredential:
		return "invalid_credential"
	default:
		return "unknown"
	}
}

// Decision is the result of checking a request's Authorization header.
type Decision struct {
	Outcome   Outcome
	Principal *domain.Principal
	Err       error
}

// Error converts a rejecting decision to its HTTP-mapped error; nil on pass.
func (d Decision) Error() error {
	switch d.Outcome {
	case OutcomePass:
		return nil
	case OutcomeNoCredential:
		return apperrors.NewNoCredential(msgNoToken)
	default:
		return apperrors.NewInvalidCredential(msgUnauthorized, d.Err)
	}
}

// ParseAuthorization extracts the token from an Authorization header value.
// "Bearer <token>" is canonical; a bare token is accepted as well.
func ParseAuthorization(header string) (string, bool) {
	fields := strings.Fields(header)
	switch {
	case len(fields) == 0:
		return "", false
	case strings.EqualFold(fields[0], bearerScheme):
		if len(fields) < 2 {
			return "", false
		}
		return strings.Join(fields[1:], " "), true
	case len(fields) == 1:
		return fields[0], true
	default:
		// unknown scheme; let verification reject it
		return header, true
	}
}

// Gate validates bearer tokens. It trusts the token's claims and does not
// consult the user store.
type Gate struct {
	tokens *TokenManager
}

// NewGate constructs the gate.
func NewGate(tokens *TokenManager) *Gate {
	return &Gate{tokens: tokens}
}

// Decide gates a single Authorization header value.
func (g *Gate) Decide(header string) Decision {
	token, ok := ParseAuthorization(header)
	if !ok {
		return Decision{Outcome: OutcomeNoCredential}
	}

	claims, err := g.tokens.Parse(token)
	if err != nil {
		return Decision{Outcome: OutcomeInvalidCredential, Err: err}
	}

	principal := &domain.Principal{ID: claims.PrincipalID}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return Decision{Outcome: OutcomePass, Principal: principal}
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	decision := g.Decide(c.Get(fiber.HeaderAuthorization))
	if err := decision.Error(); err != nil {
		return err
	}

	c.Locals(principalKey, decision.Principal)
	c.SetUserContext(WithPrincipal(c.UserContext(), decision.Principal))
	return c.Next()
}
