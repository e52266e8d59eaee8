package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRoomCode(t *testing.T) {
	req := require.New(t)

	code, err := GenerateRoomCode()
	req.NoError(err)
	req.Len(code, RoomCodeLength)
	req.True(IsValidRoomCode(code))
}

func TestGenerateRoomCodeDistinct(t *testing.T) {
	req := require.New(t)

	// 代碼空間遠大於同時存活的房間數，連續生成幾乎不會重複
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateRoomCode()
		req.NoError(err)
		req.True(IsValidRoomCode(code))
		seen[code] = true
	}
	req.GreaterOrEqual(len(seen), 199)
}

func TestIsValidRoomCode(t *testing.T) {
	cases := []struct {
		name  string
		code  string
		valid bool
	}{
		{"合法代碼", "AB23CD", true},
		{"長度不足", "AB23C", false},
		{"長度過長", "AB23CDE", false},
		{"含易混淆字元 0", "AB23C0", false},
		{"含易混淆字元 O", "AB23CO", false},
		{"含易混淆字元 1", "AB23C1", false},
		{"含易混淆字元 I", "AB23CI", false},
		{"小寫字母", "ab23cd", false},
		{"空字串", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.valid, IsValidRoomCode(tc.code))
		})
	}
}
