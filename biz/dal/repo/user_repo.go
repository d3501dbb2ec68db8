package repo

import (
	"context"
	"errors"

	"accountd/be/biz/model/convert"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/model/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository is the gorm AccountStore. Table and column names come from
// the schema it was built with.
type AccountRepository struct {
	db     *gorm.DB
	schema storage.AccountSchema
}

var _ AccountStore = (*AccountRepository)(nil)

func NewAccountRepository(db *gorm.DB, schema storage.AccountSchema) *AccountRepository {
	return &AccountRepository{db: db, schema: schema}
}

func (r *AccountRepository) users(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&storage.UserRecord{}).Table(r.schema.UserTable)
}

func (r *AccountRepository) Create(ctx context.Context, u *domain.User, saltedHash []byte) (*domain.User, error) {
	rec := convert.UserDomainToRecord(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.schema.UserTable).Create(rec).Error; err != nil {
			return err
		}
		return tx.Table(r.schema.CredentialTable).Create(&storage.UserCredentialRecord{
			UserId:            rec.UserId,
			SaltedHash:        saltedHash,
			CredentialVersion: 1,
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	created := convert.UserRecordToDomain(rec)
	created.CredentialVersion = 1
	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, r.schema.UserIDColumn, userID)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, r.schema.UsernameColumn, username)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, r.schema.EmailColumn, email)
}

func (r *AccountRepository) findOne(ctx context.Context, column, value string) (*domain.User, error) {
	var m storage.UserRecord
	err := r.users(ctx).Where(clause.Eq{Column: column, Value: value}).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.UserRecordToDomain(&m), nil
}

func (r *AccountRepository) UsernameExists(ctx context.Context, username, excludeUserID string) (bool, error) {
	return r.exists(ctx, r.schema.UsernameColumn, username, excludeUserID)
}

func (r *AccountRepository) EmailExists(ctx context.Context, email, excludeUserID string) (bool, error) {
	return r.exists(ctx, r.schema.EmailColumn, email, excludeUserID)
}

// exists 的比较交给数据库, 与唯一索引使用同一个排序规则
func (r *AccountRepository) exists(ctx context.Context, column, value, excludeUserID string) (bool, error) {
	q := r.users(ctx).Where(clause.Eq{Column: column, Value: value})
	if excludeUserID != "" {
		q = q.Where(clause.Neq{Column: r.schema.UserIDColumn, Value: excludeUserID})
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateField writes one mutable column. A unique index violation is reported
// as ErrDuplicated and leaves the row untouched.
func (r *AccountRepository) UpdateField(ctx context.Context, userID string, field domain.SettingField, value string) error {
	column := r.schema.Column(field)
	if column == "" {
		return errors.New("unknown setting field: " + string(field))
	}

	res := r.users(ctx).
		Where(clause.Eq{Column: r.schema.UserIDColumn, Value: userID}).
		Update(column, value)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// mysql reports changed rows, not matched rows
		ok, err := r.exists(ctx, r.schema.UserIDColumn, userID, "")
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

func translate(err error) error {
	if errs.IsDuplicatedErr(err) {
		return ErrDuplicated
	}
	return err
}
