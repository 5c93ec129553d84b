package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/pkg/errorx"
)

type QuestDomain interface {
	GetList(context.Context, *model.GetQuestsRequest) (*model.GetQuestsResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	Start(context.Context, *model.StartQuestRequest) (*model.StartQuestResponse, error)
	UpdateProgress(context.Context, *model.UpdateQuestProgressRequest) (*model.UpdateQuestProgressResponse, error)
	Verify(context.Context, *model.VerifyQuestRequest) (*model.VerifyQuestResponse, error)
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
}

type questDomain struct {
	manager *questboard.Manager
}

func NewQuestDomain(manager *questboard.Manager) *questDomain {
	return &questDomain{manager: manager}
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetQuestsRequest,
) (*model.GetQuestsResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	var quests []entity.Quest
	if req.Category == "" {
		quests, err = board.Quests(ctx)
	} else {
		quests, err = board.QuestsByCategory(ctx, req.Category)
	}
	if err != nil {
		return nil, err
	}

	return &model.GetQuestsResponse{Quests: convertQuests(quests)}, nil
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	quest, err := board.Quest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetQuestResponse{Quest: convertQuest(quest)}, nil
}

func (d *questDomain) Start(
	ctx context.Context, req *model.StartQuestRequest,
) (*model.StartQuestResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	quest, err := board.StartQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.StartQuestResponse{Quest: convertQuest(quest)}, nil
}

func (d *questDomain) UpdateProgress(
	ctx context.Context, req *model.UpdateQuestProgressRequest,
) (*model.UpdateQuestProgressResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	quest, err := board.SetQuestProgress(ctx, req.ID, req.Progress)
	if err != nil {
		return nil, err
	}

	return &model.UpdateQuestProgressResponse{Quest: convertQuest(quest)}, nil
}

func (d *questDomain) Verify(
	ctx context.Context, req *model.VerifyQuestRequest,
) (*model.VerifyQuestResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	result, quest, err := board.VerifyQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.VerifyQuestResponse{
		Success:   result.Success,
		Message:   result.Message,
		Retryable: result.Retryable,
		Quest:     convertQuest(quest),
	}, nil
}

func (d *questDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	quest, err := board.CompleteQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.CompleteQuestResponse{
		Quest:   convertQuest(quest),
		Profile: convertProfile(board.Profile()),
	}, nil
}
