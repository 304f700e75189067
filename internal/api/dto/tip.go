package dto

import (
	"safecity-service/internal/domain"
	"time"
)

type CreateTipRequest struct {
	Tip string `json:"tip"`
}

type UpdateTipRequest struct {
	TipID string `json:"tip_id"`
	Tip   string `json:"tip"`
}

type DeleteTipRequest struct {
	TipID string `json:"tip_id"`
}

type TipResponse struct {
	ID        string    `json:"id"`
	Tip       string    `json:"tip"`
	CreatedAt time.Time `json:"created_at"`
}

type ListTipsResponse struct {
	Tips []TipResponse `json:"tips"`
}

func NewTipResponse(t *domain.SafetyTip) TipResponse {
	return TipResponse{ID: t.ID.String(), Tip: t.Tip, CreatedAt: t.CreatedAt}
}

func NewListTipsResponse(tips []domain.SafetyTip) ListTipsResponse {
	res := ListTipsResponse{Tips: make([]TipResponse, 0, len(tips))}
	for i := range tips {
		res.Tips = append(res.Tips, NewTipResponse(&tips[i]))
	}
	return res
}
