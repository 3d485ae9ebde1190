package services

import (
	"context"

	"postboard/backend/app/dto"
	"postboard/backend/app/models"
	"postboard/backend/app/password"
	"postboard/backend/app/repo"
	"postboard/backend/global"
)

// UserService has no ownership rule: any authenticated actor may replace,
// patch or delete any account.
type UserService struct {
	store  *repo.Store
	hasher *password.Hasher
}

func NewUserService(store *repo.Store, hasher *password.Hasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, NotFound(MsgNoUsers)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToDTO(&users[i]))
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*dto.UserResponse, error) {
	u, err := s.store.Users.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound(MsgUserNotFound)
	}
	res := userToDTO(u)
	return &res, nil
}

func (s *UserService) Create(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, error) {
	hashed, err := s.hashValid(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: req.Email, Username: req.Username, Password: hashed}
	var res dto.UserResponse
	err = s.store.Transaction(ctx, func(tx *repo.Store) error {
		if err := tx.Users.Create(ctx, u); err != nil {
			return err
		}
		created, err := tx.Users.GetDetailed(ctx, u.ID)
		if err != nil {
			return err
		}
		res = userToDTO(created)
		return nil
	})
	if err != nil {
		return nil, mutationErr(err)
	}
	global.Logger.Info().Uint("user", u.ID).Str("username", u.Username).Msg("user registered")
	return &res, nil
}

// Replace overwrites email, username and password of user id.
func (s *UserService) Replace(ctx context.Context, actor *models.User, id uint, req dto.UserCreateRequest) (*dto.UserResponse, error) {
	hashed, err := s.hashValid(req.Password)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, actor, id, map[string]any{
		"email":    req.Email,
		"username": req.Username,
		"password": hashed,
	})
}

// Patch applies only the fields present in req.
func (s *UserService) Patch(ctx context.Context, actor *models.User, id uint, req dto.UserUpdateRequest) (*dto.UserResponse, error) {
	updates := map[string]any{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Password != nil {
		hashed, err := s.hashValid(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}
	return s.update(ctx, actor, id, updates)
}

func (s *UserService) Delete(ctx context.Context, actor *models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		u, err := tx.Users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return NotFound(MsgUserNotFound)
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return mutationErr(err)
	}
	global.Logger.Info().Uint("actor", actor.ID).Uint("user", id).Msg("user deleted")
	return nil
}

func (s *UserService) update(ctx context.Context, actor *models.User, id uint, updates map[string]any) (*dto.UserResponse, error) {
	var res dto.UserResponse
	err := s.store.Transaction(ctx, func(tx *repo.Store) error {
		u, err := tx.Users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return NotFound(MsgUserNotFound)
		}
		if len(updates) > 0 {
			if err := tx.Users.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		updated, err := tx.Users.GetDetailed(ctx, id)
		if err != nil {
			return err
		}
		res = userToDTO(updated)
		return nil
	})
	if err != nil {
		return nil, mutationErr(err)
	}
	global.Logger.Debug().Uint("actor", actor.ID).Uint("user", id).Int("fields", len(updates)).Msg("user updated")
	return &res, nil
}

// hashValid enforces the password policy before hashing.
func (s *UserService) hashValid(pw string) (string, error) {
	if !password.ValidPolicy(pw) {
		return "", BadRequest("%s", MsgInvalidPassword)
	}
	return s.hasher.Hash(pw)
}
