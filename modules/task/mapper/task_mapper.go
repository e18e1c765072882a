package mapper

import (
	"agenda-api/modules/task/dto"
	"agenda-api/modules/task/entity"
)

func ToTaskResponse(task *entity.Task) *dto.TaskResponse {
	if task == nil {
		return nil
	}

	reminders := []int64(task.Reminders)
	if reminders == nil {
		reminders = []int64{}
	}

	return &dto.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueAt:       task.DueAt,
		Priority:    int(task.Priority),
		Status:      string(task.Status),
		Reminders:   reminders,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func ToTaskResponses(tasks []entity.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *ToTaskResponse(&tasks[i]))
	}
	return out
}
