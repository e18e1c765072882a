package service

import (
	coreEntity "agenda-api/core/entity"
	"time"

	"github.com/google/uuid"
)

func baseWithID(id uuid.UUID) coreEntity.BaseEntity {
	now := time.Now()
	return coreEntity.BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now}
}

// UserIDForSubject derives the stable user id for a Google account.
func UserIDForSubject(subject string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("google:"+subject))
}
