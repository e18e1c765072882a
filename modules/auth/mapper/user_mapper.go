package mapper

import (
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/entity"
)

func ToUserResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                   user.ID,
		Name:                 user.Name,
		Email:                user.Email,
		Timezone:             user.Timezone,
		NotificationSettings: user.NotificationSettings,
		CalendarPreferences:  user.CalendarPreferences,
		CreatedAt:            user.CreatedAt,
	}
}

func ToCalendarPreferences(req *dto.CalendarPreferencesRequest) entity.CalendarPreferences {
	return entity.CalendarPreferences{
		DefaultView: req.DefaultView,
		WorkingHours: entity.WorkingHours{
			Start: req.WorkingHours.Start,
			End:   req.WorkingHours.End,
		},
		WeekStart: req.WeekStart,
	}
}
