package services

import (
	"tripplanner/internal/domain/models"
	"tripplanner/internal/repositories"
)

// TripStore is the trip persistence used by the services. Every lookup is
// scoped by owner.
type TripStore interface {
	Create(t models.Trip) (models.Trip, error)
	GetByID(id, userID int64) (models.Trip, error)
	ListByUser(userID int64) ([]models.Trip, error)
	Update(t models.Trip) (models.Trip, error)
	Delete(id, userID int64) error
}

type UserStore interface {
	Create(u models.User) (models.User, error)
	GetByEmail(email string) (models.User, error)
	GetByID(id int64) (models.User, error)
	EmailExists(email string) (bool, error)
	Update(u models.User) (models.User, error)
}

type GenerationLogStore interface {
	Insert(l models.GenerationLog) (string, error)
}

var (
	_ TripStore          = repositories.TripRepository{}
	_ UserStore          = repositories.UserRepository{}
	_ GenerationLogStore = repositories.GenerationLogRepository{}
)
