package response

import (
	"context"
	"net/url"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/models"
)

// NewCodeResponseTypeHandler create the authorization code response type
// handler
func NewCodeResponseTypeHandler(cg generates.CodeGenerate, codeExp time.Duration) *CodeResponseTypeHandler {
	return &CodeResponseTypeHandler{CodeGenerate: cg, CodeExp: codeExp}
}

// CodeResponseTypeHandler mints short-lived single-use authorization codes
// bound to the client, redirect URI, resource owner and granted scope.
type CodeResponseTypeHandler struct {
	CodeGenerate generates.CodeGenerate
	CodeExp      time.Duration
}

func (h *CodeResponseTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, tt oauth2.TokenTypeHandler, req *oauth2.AuthorizeRequest) (url.Values, error) {
	code, err := h.CodeGenerate.Token(ctx, req.Client.GetID(), req.UserID)
	if err != nil {
		return nil, err
	}

	if err := mm.Code().Create(ctx, &models.AuthorizationCode{
		Code:        code,
		ClientID:    req.Client.GetID(),
		RedirectURI: req.RedirectURI,
		UserID:      req.UserID,
		Scope:       req.Scope,
		Expires:     time.Now().Add(h.CodeExp),
	}); err != nil {
		return nil, err
	}

	return url.Values{"code": {code}}, nil
}
