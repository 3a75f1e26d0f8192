package service

import (
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
)

// DefaultTemplates 新建堂区时预置的上下文模板
func DefaultTemplates(parishID string) []model.PetitionTemplate {
	return []model.PetitionTemplate{
		{
			ParishID:    parishID,
			Title:       "Sunday Mass",
			Description: "General intentions for the Sunday assembly",
			Context:     "For the Church and for the Pope, our Bishop, and all clergy.\nFor vocations to the priesthood and religious life.\nFor peace in our world and for those who govern.",
			IsSystem:    true,
		},
		{
			ParishID:    parishID,
			Title:       "Daily Mass",
			Description: "Short intentions for weekday celebrations",
			Context:     "For the intentions of those gathered here today.\nFor the sick and the homebound of our parish.",
			IsSystem:    true,
		},
		{
			ParishID:    parishID,
			Title:       "Wedding",
			Description: "Intentions for a celebration of the Sacrament of Matrimony",
			Context:     "For the newly married couple, that their love may be faithful and fruitful.\nFor their families and friends who support them.\nFor all married couples, that they may be renewed in their commitment.",
			IsSystem:    true,
		},
		{
			ParishID:    parishID,
			Title:       "Funeral",
			Description: "Intentions for a Funeral Mass",
			Context:     "For the deceased, that they may rest in eternal peace.\nFor the family and friends who mourn, that they may find comfort.\nFor all the faithful departed.",
			IsSystem:    true,
		},
	}
}
