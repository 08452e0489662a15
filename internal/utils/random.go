package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleStaff,
	domain.RoleScheduler,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var positions = []string{"前台", "后厨", "配送", "保洁", "店长"}

func GenerateRandomPosition() string {
	return positions[rand.Intn(len(positions))]
}

var unitNames = []string{"旗舰店", "东门店", "西门店", "北站店", "机场店", "大学城店"}

func GenerateRandomUnit() *domain.Unit {
	return &domain.Unit{
		Name: unitNames[rand.Intn(len(unitNames))] + GenerateRandomID(0, 3),
	}
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		Position:     GenerateRandomPosition(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// GenerateRandomShift 在 weekStart 所在周内随机生成一个草稿班次。
// 少量班次故意不填下班时间，用于验证打烊时间的推算逻辑。
func GenerateRandomShift(userID int64, unitID int64, weekStart time.Time) *domain.Shift {
	day := rand.Intn(7)
	startHour := rand.Intn(14) + 8 // 8 点到 21 点之间上班

	start := weekStart.AddDate(0, 0, day).Add(time.Duration(startHour) * time.Hour)

	shift := &domain.Shift{
		UserID:    userID,
		UnitID:    unitID,
		StartTime: start,
		Status:    domain.ShiftStatusDraft,
	}

	switch rand.Intn(10) {
	case 0:
		shift.IsDayOff = true
	case 1:
		// 不填下班时间
	default:
		end := start.Add(time.Duration(rand.Intn(6)+3) * time.Hour)
		shift.EndTime = &end
	}

	return shift
}

// GenerateRandomTimeEntry 在 monthStart 所在月内随机生成一条打卡记录
func GenerateRandomTimeEntry(userID int64, unitID int64, monthStart time.Time) *domain.TimeEntry {
	day := rand.Intn(28)
	startHour := rand.Intn(12) + 8

	start := monthStart.AddDate(0, 0, day).Add(time.Duration(startHour) * time.Hour)

	entry := &domain.TimeEntry{
		UserID:    userID,
		UnitID:    unitID,
		StartTime: start,
	}

	// 少量记录保持未完成状态
	if rand.Intn(10) != 0 {
		end := start.Add(time.Duration(rand.Intn(8)+1) * time.Hour)
		entry.EndTime = &end
	}

	return entry
}
