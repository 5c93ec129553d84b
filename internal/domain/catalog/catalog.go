package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/enum"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type questRewardsYAML struct {
	XP  uint64 `yaml:"xp"`
	NFT string `yaml:"nft"`
}

type questDefinition struct {
	ID               string           `yaml:"id"`
	Title            string           `yaml:"title"`
	Description      string           `yaml:"description"`
	Category         string           `yaml:"category"`
	Difficulty       string           `yaml:"difficulty"`
	VerificationType string           `yaml:"verification_type"`
	Requirements     []string         `yaml:"requirements"`
	Rewards          questRewardsYAML `yaml:"rewards"`
	IsDaily          bool             `yaml:"is_daily"`
	IsWeekly         bool             `yaml:"is_weekly"`
	ValidationData   map[string]any   `yaml:"validation_data"`
}

type nftDefinition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Rarity      string `yaml:"rarity"`
	Claimable   bool   `yaml:"claimable"`
	Owned       bool   `yaml:"owned"`
	ClaimPrice  uint64 `yaml:"claim_price"`
}

type catalogYAML struct {
	Quests []questDefinition `yaml:"quests"`
	NFTs   []nftDefinition   `yaml:"nfts"`
}

// Catalog is the immutable list of quest and NFT seeds. Every session gets
// its own fresh instances of them.
type Catalog struct {
	quests []entity.Quest
	nfts   []nftDefinition

	rewardNFTs map[string]bool
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var raw catalogYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	c := &Catalog{nfts: raw.NFTs, rewardNFTs: map[string]bool{}}

	nftIDs := map[string]bool{}
	for _, def := range raw.NFTs {
		if err := validateNFT(def); err != nil {
			return nil, err
		}

		if nftIDs[def.ID] {
			return nil, fmt.Errorf("duplicated nft %s", def.ID)
		}
		nftIDs[def.ID] = true
	}

	questIDs := map[string]bool{}
	for _, def := range raw.Quests {
		quest, err := toQuest(def)
		if err != nil {
			return nil, err
		}

		if questIDs[quest.ID] {
			return nil, fmt.Errorf("duplicated quest %s", quest.ID)
		}
		questIDs[quest.ID] = true

		if nft := quest.Rewards.NFT; nft != "" {
			if !nftIDs[nft] {
				return nil, fmt.Errorf("quest %s rewards unknown nft %s", quest.ID, nft)
			}
			c.rewardNFTs[nft] = true
		}

		c.quests = append(c.quests, quest)
	}

	return c, nil
}

func toQuest(def questDefinition) (entity.Quest, error) {
	if strings.TrimSpace(def.ID) == "" {
		return entity.Quest{}, fmt.Errorf("quest without id")
	}

	if strings.TrimSpace(def.Title) == "" {
		return entity.Quest{}, fmt.Errorf("quest %s has no title", def.ID)
	}

	category, err := enum.ToEnum[entity.QuestCategory](def.Category)
	if err != nil {
		return entity.Quest{}, fmt.Errorf("quest %s: invalid category %q", def.ID, def.Category)
	}

	difficulty, err := enum.ToEnum[entity.QuestDifficulty](def.Difficulty)
	if err != nil {
		return entity.Quest{}, fmt.Errorf("quest %s: invalid difficulty %q", def.ID, def.Difficulty)
	}

	verificationType, err := enum.ToEnum[entity.VerificationType](def.VerificationType)
	if err != nil {
		return entity.Quest{}, fmt.Errorf("quest %s: invalid verification type %q", def.ID, def.VerificationType)
	}

	if def.Rewards.XP == 0 {
		return entity.Quest{}, fmt.Errorf("quest %s has no xp reward", def.ID)
	}

	if verificationType == entity.AutomaticVerification && def.ValidationData == nil {
		return entity.Quest{}, fmt.Errorf("automatic quest %s has no validation data", def.ID)
	}

	return entity.Quest{
		ID:               def.ID,
		Title:            def.Title,
		Description:      def.Description,
		Category:         category,
		Difficulty:       difficulty,
		VerificationType: verificationType,
		Requirements:     def.Requirements,
		Rewards:          entity.QuestRewards{XP: def.Rewards.XP, NFT: def.Rewards.NFT},
		IsDaily:          def.IsDaily,
		IsWeekly:         def.IsWeekly,
		ValidationData:   def.ValidationData,
		Status:           entity.QuestAvailable,
	}, nil
}

func validateNFT(def nftDefinition) error {
	if strings.TrimSpace(def.ID) == "" {
		return fmt.Errorf("nft without id")
	}

	if _, err := enum.ToEnum[entity.Rarity](def.Rarity); err != nil {
		return fmt.Errorf("nft %s: invalid rarity %q", def.ID, def.Rarity)
	}

	if def.Claimable && def.Owned {
		return fmt.Errorf("nft %s cannot be both claimable and owned", def.ID)
	}

	return nil
}

// Quests returns fresh quest instances in catalog order.
func (c *Catalog) Quests() []entity.Quest {
	quests := make([]entity.Quest, 0, len(c.quests))
	for _, q := range c.quests {
		q.Requirements = append([]string{}, q.Requirements...)
		if q.ValidationData != nil {
			data := entity.Map{}
			for k, v := range q.ValidationData {
				data[k] = v
			}
			q.ValidationData = data
		}

		quests = append(quests, q)
	}

	return quests
}

// Quest returns a fresh instance of one quest.
func (c *Catalog) Quest(id string) (entity.Quest, bool) {
	for _, q := range c.Quests() {
		if q.ID == id {
			return q, true
		}
	}

	return entity.Quest{}, false
}

// NFTs returns fresh NFT instances in catalog order. NFTs seeded as owned are
// claimed at now. NFTs rewarded by a quest are locked until the quest is
// completed.
func (c *Catalog) NFTs(now time.Time) []entity.NFT {
	nfts := make([]entity.NFT, 0, len(c.nfts))
	for _, def := range c.nfts {
		nft := entity.NFT{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Image:       def.Image,
			Rarity:      entity.Rarity(def.Rarity),
			Claimable:   def.Claimable && !c.rewardNFTs[def.ID],
			ClaimPrice:  def.ClaimPrice,
		}

		if def.Owned {
			claimedAt := now
			nft.ClaimedAt = &claimedAt
		}

		nfts = append(nfts, nft)
	}

	return nfts
}
