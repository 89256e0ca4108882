package errs

import "github.com/pkg/errors"

// 引擎层的业务错误定义
// 所有错误均在持久化变更之前被检测到, 一旦返回错误整个动作回滚, 状态保持不变
var (
	// 权限类
	ErrUnauthorized         = errors.New("unauthorized: caller is not the seller")
	ErrUnauthorizedOperator = errors.New("unauthorized: caller is not an operator")

	// 价格/资金校验类
	ErrInvalidPrice          = errors.New("invalid price")
	ErrPriceTooSmall         = errors.New("price too small")
	ErrInvalidListingFee     = errors.New("invalid listing fee")
	ErrInsufficientFundsSend = errors.New("bid must exceed current max bid")

	// 有效期校验类
	ErrInvalidExpiration = errors.New("invalid expiration")

	// Ask 生命周期类
	ErrAskNotFound      = errors.New("ask not found")
	ErrAskAlreadyExists = errors.New("ask already exists")
	ErrAskNotActive     = errors.New("ask not active")
	ErrAskExpired       = errors.New("ask expired")

	// Bid 生命周期类
	ErrBidNotFound = errors.New("bid not found")
	ErrBidExpired  = errors.New("bid expired")

	// 结算类
	ErrAuctionNotEnded = errors.New("auction not ended")
	ErrFeesExceedPrice = errors.New("fees exceed payment")
)
