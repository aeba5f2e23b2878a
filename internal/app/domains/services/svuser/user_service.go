package svuser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tourshop/common/model"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/entity/etuser"
	"tourshop/internal/app/domains/modules/mduser"
	"tourshop/internal/app/domains/repo/rpuser"
	"tourshop/internal/app/pkg/errorx"
	"tourshop/internal/app/pkg/jwtx"
)

// ErrEmailExists 邮箱已被注册
var ErrEmailExists = errors.New("email already exists")

// Notifier 欢迎邮件入队接口（mdnotify.NotifyModule 实现）
type Notifier interface {
	Send(ctx context.Context, to, kind string, data map[string]string) error
}

// UserService 用户服务，负责登录与用户初始化
type UserService struct {
	userModule *mduser.UserModule
	issuer     *jwtx.Issuer
	notifier   Notifier
}

// NewUserService 创建用户服务实例
func NewUserService(userModule *mduser.UserModule, issuer *jwtx.Issuer) *UserService {
	return &UserService{
		userModule: userModule,
		issuer:     issuer,
	}
}

// WithNotifier 开启注册欢迎邮件
func (s *UserService) WithNotifier(n Notifier) *UserService {
	s.notifier = n
	return s
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *etuser.User
}

// Login 校验邮箱密码并签发令牌
// 用户不存在与密码错误返回同一错误
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userModule.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, rpuser.ErrNotFound) {
			return nil, errorx.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorx.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(user.Actor())
	if err != nil {
		return nil, fmt.Errorf("issue token failed: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CreateUser 创建用户（完整业务流程）
// 1. 检查邮箱是否重复
// 2. 生成密码哈希
// 3. 创建用户并落库
// 4. 配置了 Notifier 时投递欢迎邮件
func (s *UserService) CreateUser(ctx context.Context, name, email, password string, role etprimitive.Role, department string) (*etuser.User, error) {
	email = normalizeEmail(email)
	_, err := s.userModule.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, rpuser.ErrNotFound):
		return nil, fmt.Errorf("check email duplicate failed: %w", err)
	}

	user, err := etuser.NewUser(0, name, email, role)
	if err != nil {
		return nil, fmt.Errorf("create user entity failed: %w", err)
	}
	user.Department = department

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userModule.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user failed: %w", err)
	}

	// 欢迎邮件失败不影响注册
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, user.Email, model.NotificationKindRegistration, map[string]string{
			"name":  user.Name,
			"email": user.Email,
		})
	}

	return user, nil
}

// GetUser 查询用户
func (s *UserService) GetUser(ctx context.Context, userID int64) (*etuser.User, error) {
	user, err := s.userModule.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, rpuser.ErrNotFound) {
			return nil, errorx.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
