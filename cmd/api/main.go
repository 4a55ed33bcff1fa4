package main

import (
	"context"
	"errors"
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// プライマリ管理者がいなければ作る（冪等）
func seedPrimaryAdmin(ctx context.Context, cfg config.Config, userRepo repo.UserRepository, hasher auth.PasswordHasher) error {
	_, err := userRepo.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	return userRepo.Create(ctx, &model.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
}

func main() {
	//.envはローカル開発用。無くても環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.SessionState{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	sessionRepo := infraRepo.NewSessionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//プライマリ管理者のシード
	if err := seedPrimaryAdmin(context.Background(), cfg, userRepo, hasher); err != nil {
		log.Fatal(err)
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, sessionRepo, verifier, issuer, clock)
	changePasswordUC := auth.NewChangePasswordUsecase(userRepo, verifier, hasher)

	itemUC := usecase.NewItemUsecase(itemRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, itemRepo)
	pendingUC := usecase.NewPendingActionUsecase(sessionRepo, cartUC)
	orderUC := usecase.NewOrderUsecase(txManager)
	buyNowUC := usecase.NewBuyNowUsecase(txManager, sessionRepo, itemRepo, idGen)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, cfg.AdminUsername)
	analyticsUC := usecase.NewAnalyticsUsecase(userRepo, itemRepo, orderRepo, clock)

	//Handler生成
	handlers := server.Handlers{
		Auth:           handler.NewAuthHandler(registerUC, loginUC, changePasswordUC),
		Item:           handler.NewItemHandler(itemUC),
		Cart:           handler.NewCartHandler(cartUC, pendingUC),
		Order:          handler.NewOrderHandler(orderUC, buyNowUC),
		AdminItem:      handler.NewAdminItemHandler(itemUC),
		AdminUser:      handler.NewAdminUserHandler(adminUserUC),
		AdminAnalytics: handler.NewAdminAnalyticsHandler(analyticsUC, orderUC),
	}

	e := server.New(cfg, sessionRepo, handlers)

	//Server起動
	addr := ":8080"
	if cfg.Port != "" {
		if cfg.Port[0] != ':' {
			addr = ":" + cfg.Port
		} else {
			addr = cfg.Port
		}
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
