package model

type GetQuestsRequest struct {
	Category string `json:"category"`
}

type GetQuestsResponse struct {
	Quests []Quest `json:"quests"`
}

type GetQuestRequest struct {
	ID string `json:"id"`
}

type GetQuestResponse struct {
	Quest Quest `json:"quest"`
}

type StartQuestRequest struct {
	ID string `json:"id"`
}

type StartQuestResponse struct {
	Quest Quest `json:"quest"`
}

type UpdateQuestProgressRequest struct {
	ID       string `json:"id"`
	Progress int    `json:"progress"`
}

type UpdateQuestProgressResponse struct {
	Quest Quest `json:"quest"`
}

type VerifyQuestRequest struct {
	ID string `json:"id"`
}

type VerifyQuestResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Quest     Quest  `json:"quest"`
}

type CompleteQuestRequest struct {
	ID string `json:"id"`
}

type CompleteQuestResponse struct {
	Quest   Quest    `json:"quest"`
	Profile *Profile `json:"profile"`
}
