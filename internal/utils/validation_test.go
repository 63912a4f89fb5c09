package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikita2423/approval-bff/internal/utils"
)

// TestSanitizeString 转义 HTML 并剔除控制字符
func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", utils.SanitizeString("<script>"))
	assert.Equal(t, "line1\nline2", utils.SanitizeString("line1\nline2"))
	assert.Equal(t, "ab", utils.SanitizeString("a\x00b"))
	assert.Equal(t, "Toy Car", utils.SanitizeString("Toy Car"))
}

// TestValidateCaseID 案件 ID 格式校验
func TestValidateCaseID(t *testing.T) {
	assert.NoError(t, utils.ValidateCaseID("case-1"))
	assert.NoError(t, utils.ValidateCaseID("Case_42"))

	assert.ErrorIs(t, utils.ValidateCaseID(""), utils.ErrEmptyID)
	assert.ErrorIs(t, utils.ValidateCaseID("case/1"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateCaseID("case 1"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateCaseID(strings.Repeat("a", 65)), utils.ErrIDTooLong)
}

// TestValidateCaseNumber 案件编号校验
func TestValidateCaseNumber(t *testing.T) {
	assert.NoError(t, utils.ValidateCaseNumber("EG100R1"))
	assert.NoError(t, utils.ValidateCaseNumber("  EG100R1  "))

	assert.ErrorIs(t, utils.ValidateCaseNumber("   "), utils.ErrEmptyCaseNumber)
	assert.ErrorIs(t, utils.ValidateCaseNumber(strings.Repeat("x", 129)), utils.ErrCaseNumberTooLong)
	assert.ErrorIs(t, utils.ValidateCaseNumber("<script>alert(1)</script>"), utils.ErrDangerousChars)
	assert.ErrorIs(t, utils.ValidateCaseNumber("1; DROP TABLE cases"), utils.ErrDangerousChars)
}

// TestTrimAndValidate 清理并限长
func TestTrimAndValidate(t *testing.T) {
	got, err := utils.TrimAndValidate("  Toy Car  ", 32)
	assert.NoError(t, err)
	assert.Equal(t, "Toy Car", got)

	_, err = utils.TrimAndValidate("   ", 32)
	assert.ErrorIs(t, err, utils.ErrEmptyString)

	_, err = utils.TrimAndValidate(strings.Repeat("a", 33), 32)
	assert.ErrorIs(t, err, utils.ErrStringTooLong)
}
