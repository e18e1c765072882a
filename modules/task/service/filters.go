package service

import "agenda-api/modules/task/entity"

func FilterByStatus(tasks []entity.Task, status entity.TaskStatus) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func FilterByPriority(tasks []entity.Task, priority entity.Priority) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Priority == priority {
			out = append(out, t)
		}
	}
	return out
}
