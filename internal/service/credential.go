// 동적 비밀번호 계산 및 검증
//
// 비밀번호 규칙: "banana" + (현재 연도 - 42)
//   - 매 호출마다 현재 시각으로 다시 계산 (캐시하지 않음)
//   - 연도 경계(12/31 → 1/1)에서 즉시 바뀌며 유예 기간은 없음
//   - 연도는 프로세스 로컬 시계 기준

package service

import (
	"crypto/subtle"
	"fmt"
	"time"
)

const (
	passwordPrefix = "banana"
	yearOffset     = 42
)

type CredentialVerifier struct {
	now func() time.Time
}

func NewCredentialVerifier(now func() time.Time) *CredentialVerifier {
	if now == nil {
		now = time.Now
	}
	return &CredentialVerifier{now: now}
}

// HistoricalYear returns the year yearOffset years before the current one.
func (v *CredentialVerifier) HistoricalYear() int {
	return v.now().Year() - yearOffset
}

func (v *CredentialVerifier) CurrentPassword() string {
	return fmt.Sprintf("%s%d", passwordPrefix, v.HistoricalYear())
}

// Verify compares candidate with the password valid right now.
func (v *CredentialVerifier) Verify(candidate string) bool {
	expected := v.CurrentPassword()
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) == 1
}

// Hint describes the formula and the current year without revealing the literal password.
func (v *CredentialVerifier) Hint() string {
	return fmt.Sprintf("The password is '%s' + the year from %d years ago (%d)", passwordPrefix, yearOffset, v.HistoricalYear())
}
