package addbookcopy_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/addbookcopy"
)

func givenCommand(t *testing.T, isbn string) addbookcopy.Command {
	command, err := addbookcopy.BuildCommand(uuid.New(), isbn, "Second Edition", time.Now())
	require.NoError(t, err)

	return command
}

func Test_Decide_Success_CreatesCopyInMaintenance(t *testing.T) {
	// arrange
	command := givenCommand(t, "978-1-098-10013-1")

	// act
	result := addbookcopy.Decide(addbookcopy.State{BookExists: true}, command)

	// assert
	require.True(t, result.HasChangeToStore())
	assert.Equal(t, command.CopyID.String(), result.BookCopy.CopyID)
	assert.Equal(t, "9781098100131", result.BookCopy.ISBN)
	assert.Equal(t, "Second Edition", result.BookCopy.Imprint)
	assert.Equal(t, core.Maintenance, result.BookCopy.Status)
	assert.True(t, result.BookCopy.DueBack.IsZero())
}

func Test_Decide_Error_WhenBookIsNotInCatalog(t *testing.T) {
	// act
	result := addbookcopy.Decide(addbookcopy.State{}, givenCommand(t, "9781098100131"))

	// assert
	assert.ErrorIs(t, result.HasError(), addbookcopy.ErrBookNotInCatalog)
}

func Test_Decide_Idempotent_WhenCopyAlreadyExists(t *testing.T) {
	// arrange
	command := givenCommand(t, "9781098100131")
	existing := core.BuildBookCopy(command.CopyID, command.ISBN, "")

	// act
	result := addbookcopy.Decide(addbookcopy.State{BookExists: true, CopyExists: true, ExistingCopy: existing}, command)

	// assert
	assert.True(t, result.IsIdempotent())
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenCopyIDBelongsToAnotherBook(t *testing.T) {
	// arrange
	command := givenCommand(t, "9781098100131")
	existing := core.BuildBookCopy(command.CopyID, "9780321125217", "")

	// act
	result := addbookcopy.Decide(addbookcopy.State{BookExists: true, CopyExists: true, ExistingCopy: existing}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), addbookcopy.ErrCopyIDTaken)
}

func Test_BuildCommand_ShouldFail_WithInvalidISBN(t *testing.T) {
	_, err := addbookcopy.BuildCommand(uuid.New(), "ISBN 978", "", time.Now())

	assert.ErrorIs(t, err, core.ErrInvalidISBN)
}
