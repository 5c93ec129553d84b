package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/model"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	CreateProfile(context.Context, *model.CreateProfileRequest) (*model.CreateProfileResponse, error)
	UpdateProfile(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
}

type userDomain struct {
	manager *questboard.Manager
}

func NewUserDomain(manager *questboard.Manager) *userDomain {
	return &userDomain{manager: manager}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	stats, err := board.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GetMeResponse{
		Address: board.Address(),
		Profile: convertProfile(board.Profile()),
		Stats:   stats,
	}, nil
}

func (d *userDomain) CreateProfile(
	ctx context.Context, req *model.CreateProfileRequest,
) (*model.CreateProfileResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	profile, err := board.CreateProfile(ctx, "", req.Username, req.Avatar)
	if err != nil {
		return nil, err
	}

	return &model.CreateProfileResponse{Profile: *convertProfile(&profile)}, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	profile, err := board.UpdateProfile(ctx, questboard.ProfileUpdate{
		Username: req.Username,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
		Twitter:  req.Twitter,
		Telegram: req.Telegram,
		Discord:  req.Discord,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}

	return &model.UpdateProfileResponse{Profile: convertProfile(profile)}, nil
}
