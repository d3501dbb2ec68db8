package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorEqual(t *testing.T) {
	assert.True(t, ErrorEqual(nil, nil))
	assert.False(t, ErrorEqual(nil, ServerError))
	assert.False(t, ErrorEqual(ServerError, nil))
	assert.True(t, ErrorEqual(ParamError, ParamError.SetMsg("account too long")))
	assert.False(t, ErrorEqual(ParamError, ServerError))
}

func TestCredentialFailuresAreIndistinguishable(t *testing.T) {
	assert.True(t, ErrorEqual(AccountNotFound, InvalidPassword))
	assert.True(t, ErrorEqual(AccountNotFound, CorruptCredential))
	assert.Equal(t, AccountNotFound.Msg(), InvalidPassword.Msg())
	assert.Equal(t, AccountNotFound.Msg(), CorruptCredential.Msg())
}

func TestSetErr(t *testing.T) {
	e := ServerError.SetErr(errors.New("boom"))
	assert.Equal(t, ServerError.Code(), e.Code())
	assert.Equal(t, "boom", e.Msg())
	assert.Equal(t, "10001:boom", e.Error())
	// the shared value is untouched
	assert.Equal(t, "internal server error", ServerError.Msg())
}

func TestIsDuplicatedErr(t *testing.T) {
	assert.False(t, IsDuplicatedErr(nil))
	assert.False(t, IsDuplicatedErr(errors.New("other")))
	assert.True(t, IsDuplicatedErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicatedErr(fmt.Errorf("update: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicatedErr(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicatedErr(&mysql.MySQLError{Number: 1213}))
}
