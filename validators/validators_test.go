package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, EmailValidator("a@x.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("missing@domain@twice.com"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, PasswordValidator("long enough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
}

func TestTitleValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, TitleValidator("Coffee"))
	assert.ErrorIs(t, TitleValidator(""), ErrTitleEmpty)
	assert.ErrorIs(t, TitleValidator("   "), ErrTitleEmpty)
	assert.ErrorIs(t, TitleValidator("\t\n"), ErrTitleEmpty)
	assert.ErrorIs(t, TitleValidator(strings.Repeat("x", 121)), ErrTitleTooLong)
}

func TestAmountValidator(t *testing.T) {
	t.Parallel()

	assert.NoError(t, AmountValidator(3.50))
	assert.ErrorIs(t, AmountValidator(0), ErrAmountInvalid)
	assert.ErrorIs(t, AmountValidator(-1), ErrAmountInvalid)
}

func TestCategoryValidator(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		assert.NoError(t, CategoryValidator(c))
	}
	assert.ErrorIs(t, CategoryValidator("Gambling"), ErrCategoryInvalid)
	assert.ErrorIs(t, CategoryValidator("food"), ErrCategoryInvalid)
	assert.ErrorIs(t, CategoryValidator(""), ErrCategoryInvalid)
}
