package repos

import (
	"context"
	"database/sql"

	models "github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/uptrace/bun"
)

type UserRepo struct {
	db *bun.DB
}

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (c *UserRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)

	err := c.db.NewSelect().Model(user).Relation("Organizations").Where(`"user"."id" = ?`, id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (c *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)

	err := c.db.NewSelect().Model(user).ExcludeColumn("password").Where(`"user"."email" = ?`, email).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// AddSocialUser upserts a user coming back from an OAuth provider and makes
// sure they own a default organization. Returning users keep their existing
// organizations untouched.
func (c *UserRepo) AddSocialUser(ctx context.Context, user models.User) (int64, error) {
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&user).
			On("CONFLICT (email) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("provider = EXCLUDED.provider").
			Set("provider_details = EXCLUDED.provider_details").
			Set("is_verified = true").
			Set("updated_at = now()").
			Returning("id").
			Exec(ctx)
		if err != nil {
			return err
		}

		count, err := tx.NewSelect().Model((*models.Organization)(nil)).
			Where("owner_id = ?", user.Id).
			Count(ctx)
		if err != nil {
			return err
		}

		if count == 0 {
			org := &models.Organization{
				Name:    user.Name + "'s workspace",
				OwnerId: user.Id,
				Plan:    "free",
			}
			_, err = tx.NewInsert().Model(org).Exec(ctx)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return user.Id, nil
}

func (c *UserRepo) UserProfile(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)

	err := c.db.NewSelect().Model(user).ExcludeColumn("password").Where(`"user"."id" = ?`, id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (c *UserRepo) GetCredentials(ctx context.Context, id int64) (sql.NullString, error) {
	user := new(models.User)

	err := c.db.NewSelect().Model(user).Column("password").Where(`"user"."id" = ?`, id).Scan(ctx)
	if err != nil {
		return sql.NullString{}, err
	}

	return user.Password, nil
}

func (c *UserRepo) UpdateProfile(ctx context.Context, id int64, name, username string) error {
	_, err := c.db.NewUpdate().Model((*models.User)(nil)).
		Set("name = ?", name).
		Set("username = ?", username).
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (c *UserRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	_, err := c.db.NewUpdate().Model((*models.User)(nil)).
		Set("password = ?", hash).
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// Deactivate soft-deletes the account. The row stays so memberships and
// invitation history keep their references.
func (c *UserRepo) Deactivate(ctx context.Context, id int64) error {
	_, err := c.db.NewUpdate().Model((*models.User)(nil)).
		Set("is_active = false").
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (c *UserRepo) SetEmailVerified(ctx context.Context, id int64) error {
	_, err := c.db.NewUpdate().Model((*models.User)(nil)).
		Set("is_verified = true").
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	return err
}
