package utils

import (
	"crypto/rand"
	"strings"
)

// 房間代碼字母表，排除了易混淆的 0、O、1、I 四個字元。
// 長度 32 可整除 256，逐位取模不會偏向任何字元。
const roomCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// RoomCodeLength 房間代碼的固定長度
const RoomCodeLength = 6

// GenerateRoomCode 生成一組新的隨機房間代碼
func GenerateRoomCode() (string, error) {
	b := make([]byte, RoomCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = roomCodeAlphabet[int(b[i])%len(roomCodeAlphabet)]
	}
	return string(b), nil
}

// IsValidRoomCode 檢查字串是否符合房間代碼的格式
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(roomCodeAlphabet, r) {
			return false
		}
	}
	return true
}
