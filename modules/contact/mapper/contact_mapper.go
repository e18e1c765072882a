package mapper

import (
	"agenda-api/modules/contact/dto"
	"agenda-api/modules/contact/entity"
)

func ToContactResponse(contact *entity.Contact) *dto.ContactResponse {
	if contact == nil {
		return nil
	}
	return &dto.ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

func ToContactResponses(contacts []entity.Contact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, *ToContactResponse(&contacts[i]))
	}
	return out
}
