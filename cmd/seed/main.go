package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/config"
	"github.com/teamshift-dev/workforce-manager/backend/internal/repository"
	"github.com/teamshift-dev/workforce-manager/backend/internal/schedule"
	"github.com/teamshift-dev/workforce-manager/backend/internal/seed"
	"github.com/teamshift-dev/workforce-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func seedUsers(cfg *config.Config, repo *repository.Repository, n int) {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机用户", "error", err)
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("无法插入用户", "error", err)
			continue
		}

		cnt++
	}

	slog.Info("插入用户成功", "count", cnt)
}

func seedUnits(repo *repository.Repository, n int) {
	users, err := repo.GetAllUsers()
	if err != nil {
		slog.Error("无法获取用户列表", "error", err)
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		unit := utils.GenerateRandomUnit()
		if err := repo.CreateUnit(unit); err != nil {
			slog.Error("无法插入单位", "error", err)
			continue
		}

		// 随机把一部分用户加入这个单位
		for _, user := range users {
			if rand.Intn(2) == 0 {
				continue
			}
			if err := repo.AddUnitMember(unit.ID, user.ID); err != nil {
				slog.Error("无法添加单位成员", "error", err)
			}
		}

		cnt++
	}

	slog.Info("插入单位成功", "count", cnt)
}

func seedShifts(repo *repository.Repository) {
	units, err := repo.GetAllUnits()
	if err != nil {
		slog.Error("无法获取单位列表", "error", err)
		return
	}
	if len(units) == 0 {
		slog.Error("还没有任何单位，请先插入单位")
		return
	}

	weekStart := schedule.WeekStart(time.Now())

	cnt := 0
	for _, unit := range units {
		members, err := repo.GetUsersByUnitIDs([]int64{unit.ID})
		if err != nil {
			slog.Error("无法获取单位成员", "unitID", unit.ID, "error", err)
			continue
		}

		for _, member := range members {
			shift := utils.GenerateRandomShift(member.ID, unit.ID, weekStart)
			if err := repo.CreateShift(shift); err != nil {
				slog.Error("无法插入班次", "error", err)
				continue
			}
			cnt++
		}
	}

	slog.Info("插入班次成功", "count", cnt, "weekStart", weekStart.Format("2006-01-02"))
}

func seedTimeEntries(repo *repository.Repository, n int) {
	units, err := repo.GetAllUnits()
	if err != nil {
		slog.Error("无法获取单位列表", "error", err)
		return
	}
	if len(units) == 0 {
		slog.Error("还没有任何单位，请先插入单位")
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	cnt := 0
	for _, unit := range units {
		members, err := repo.GetUsersByUnitIDs([]int64{unit.ID})
		if err != nil {
			slog.Error("无法获取单位成员", "unitID", unit.ID, "error", err)
			continue
		}

		for _, member := range members {
			for i := 0; i < n; i++ {
				entry := utils.GenerateRandomTimeEntry(member.ID, unit.ID, monthStart)
				if err := repo.CreateTimeEntry(entry); err != nil {
					slog.Error("无法插入打卡记录", "error", err)
					continue
				}
				cnt++
			}
		}
	}

	slog.Info("插入打卡记录成功", "count", cnt, "month", monthStart.Format("2006-01"))
}

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机单位及成员, 3: 插入本周随机班次, 4: 插入本月随机打卡记录, 5: 插入默认邮件模板, 6: 以上全部)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if n <= 0 {
		slog.Error("请输入合法的记录数量")
		return
	}

	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		seedUsers(cfg, repo, n)
	case 2:
		seedUnits(repo, n)
	case 3:
		seedShifts(repo)
	case 4:
		seedTimeEntries(repo, n)
	case 5:
		seed.SeedEmailConfigs(repo)
	case 6:
		seedUsers(cfg, repo, n)
		seedUnits(repo, n)
		seedShifts(repo)
		seedTimeEntries(repo, n)
		seed.SeedEmailConfigs(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
