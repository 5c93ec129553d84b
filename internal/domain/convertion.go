package domain

import (
	"strconv"
	"time"

	"github.com/dotway-lab/questboard/internal/domain/wallet"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(defaultTimeLayout)
}

func convertProfile(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}

	return &model.Profile{
		ID:       p.ID,
		Address:  p.Address,
		Username: p.Username,
		Avatar:   p.Avatar,
		XP:       p.XP,
		Level:    p.Level,
		Bio:      p.Bio,
		Social: model.Social{
			Twitter:  p.Social.Twitter,
			Telegram: p.Social.Telegram,
			Discord:  p.Social.Discord,
			Email:    p.Social.Email,
		},
		JoinedAt: p.JoinedAt.Format(defaultTimeLayout),
	}
}

func convertQuest(q entity.Quest) model.Quest {
	requirements := q.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	return model.Quest{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		Category:         string(q.Category),
		Difficulty:       string(q.Difficulty),
		VerificationType: string(q.VerificationType),
		Requirements:     requirements,
		Rewards:          model.QuestRewards{XP: q.Rewards.XP, NFT: q.Rewards.NFT},
		IsDaily:          q.IsDaily,
		IsWeekly:         q.IsWeekly,
		Status:           string(q.Status),
		Progress:         q.Progress,
		Verified:         q.Verified,
		CompletedAt:      convertTime(q.CompletedAt),
	}
}

func convertQuests(quests []entity.Quest) []model.Quest {
	result := []model.Quest{}
	for _, q := range quests {
		result = append(result, convertQuest(q))
	}

	return result
}

func convertNFT(n entity.NFT) model.NFT {
	return model.NFT{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Image:       n.Image,
		Rarity:      string(n.Rarity),
		Claimable:   n.Claimable,
		ClaimPrice:  n.ClaimPrice,
		ClaimedAt:   convertTime(n.ClaimedAt),
	}
}

func convertAssets(a wallet.Assets) model.WalletAssets {
	return model.WalletAssets{
		Free:           a.Free.String(),
		Locked:         a.Locked.String(),
		Reserved:       a.Reserved.String(),
		Staked:         a.Staked.String(),
		TransfersCount: a.TransfersCount,
		IsStaking:      a.IsStaking,
		NominatorCount: a.NominatorCount,
	}
}

func convertPost(p entity.Post) model.Post {
	return model.Post{
		ID:        strconv.FormatInt(p.ID, 10),
		Author:    p.AuthorAddress,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(defaultTimeLayout),
	}
}
