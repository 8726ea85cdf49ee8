package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/application/tenant"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// UserUseCase mantiene la copia local de los usuarios del proveedor de identidad.
type UserUseCase struct {
	repo  repository.UserRepository
	clock ports.Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clock ports.Clock) *UserUseCase {
	return &UserUseCase{repo: repo, clock: clock}
}

// Store registra o actualiza al usuario autenticado (upsert por subject).
func (uc *UserUseCase) Store(ctx context.Context, id tenant.Identity, in dto.StoreUserRequest) (*dto.UserResponse, error) {
	if id.Subject == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return uc.UpsertFromProvider(ctx, dto.SyncUserRequest{
		ExternalID: id.Subject,
		Email:      in.Email,
		Name:       in.Name,
		ImageURL:   in.ImageURL,
	})
}

// UpsertFromProvider aplica un evento del proveedor de identidad.
func (uc *UserUseCase) UpsertFromProvider(ctx context.Context, in dto.SyncUserRequest) (*dto.UserResponse, error) {
	if in.ExternalID == "" || in.Email == "" {
		return nil, domain.Invalid("external_id y email son obligatorios")
	}
	now := uc.clock.Now()
	user, err := uc.repo.GetByExternalID(ctx, in.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("user: buscar %s: %w", in.ExternalID, err)
	}
	if user == nil {
		user = &entity.User{
			ID:         uuid.New().String(),
			ExternalID: in.ExternalID,
			Email:      in.Email,
			Name:       in.Name,
			ImageURL:   in.ImageURL,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		return dto.FromUser(user), nil
	}
	user.Email = in.Email
	user.Name = in.Name
	user.ImageURL = in.ImageURL
	user.UpdatedAt = now
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// Current devuelve el usuario del llamador, o nil si aún no se sincronizó.
func (uc *UserUseCase) Current(ctx context.Context, id tenant.Identity) (*dto.UserResponse, error) {
	if id.Subject == "" {
		return nil, nil
	}
	user, err := uc.repo.GetByExternalID(ctx, id.Subject)
	if err != nil || user == nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}
