package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/token"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/google/uuid"
)

type AuthDomain interface {
	Connect(context.Context, *model.ConnectRequest) (*model.ConnectResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	manager     *questboard.Manager
	tokenEngine token.Engine[model.AccessToken]
}

func NewAuthDomain(manager *questboard.Manager, tokenEngine token.Engine[model.AccessToken]) *authDomain {
	return &authDomain{manager: manager, tokenEngine: tokenEngine}
}

// Connect opens a session, or reuses the session of the request, and connects
// the wallet reported by the client.
func (d *authDomain) Connect(
	ctx context.Context, req *model.ConnectRequest,
) (*model.ConnectResponse, error) {
	sessionID := xcontext.SessionID(ctx)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// A token binds the device, the body only names it for a first connect.
	deviceID := xcontext.DeviceID(ctx)
	if deviceID == "" {
		deviceID = req.DeviceID
	}
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	board, err := d.manager.Open(ctx, sessionID, deviceID)
	if err != nil {
		return nil, err
	}

	address, placeholder, err := board.Connect(ctx, questboard.ExtensionSigner{
		Accounts: req.Accounts,
		Error:    req.ExtensionError,
	})
	if err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx).Auth
	accessToken, err := d.tokenEngine.Generate(cfg.AccessToken.Expiration, model.AccessToken{
		SessionID: sessionID,
		DeviceID:  deviceID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ConnectResponse{
		AccessToken: accessToken,
		DeviceID:    deviceID,
		Address:     address,
		Placeholder: placeholder,
		Profile:     convertProfile(board.Profile()),
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	if err := board.Logout(ctx); err != nil {
		return nil, err
	}

	d.manager.Close(board.SessionID())
	return &model.LogoutResponse{}, nil
}
