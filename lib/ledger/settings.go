package ledger

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType selects the validation and standardization rules for an
// account.
type AccountType string

const (
	CashType         AccountType = "cash"
	AssetType        AccountType = "asset"
	InventoryType    AccountType = "inventory"
	FuturesCashType  AccountType = "futures-cash"
	FuturesAssetType AccountType = "futures-asset"
)

// CashLike reports whether lines of this type go through the cash
// standardization rules.
func (t AccountType) CashLike() bool {
	return t == CashType || t == FuturesCashType
}

// Settings are the merged key/value directives from an account's SETTINGS
// rows.
type Settings struct {
	AccountType   AccountType
	BalanceType   string // normal | inverted
	AmountType    string // normal | inverted
	MktOnly       bool
	TaxOnly       bool
	InCategories  []string
	OutCategories []string
	QtyKey        string
	StartYear     int
	ROG           decimal.Decimal // rate of gain, lbs/day
	CardOrg       string
	Raw           map[string]string
}

// NewSettings returns the defaults: every account is a cash account unless
// its settings say otherwise.
func NewSettings() Settings {
	return Settings{
		AccountType: CashType,
		BalanceType: "normal",
		AmountType:  "normal",
		Raw:         make(map[string]string),
	}
}

// Merge folds one parsed settings object into the receiver. Later rows win.
func (s Settings) Merge(fields map[string]string) Settings {
	for k, v := range fields {
		s.Raw[k] = v
		switch k {
		case "accounttype":
			s.AccountType = AccountType(strings.ToLower(v))
		case "balancetype":
			s.BalanceType = strings.ToLower(v)
		case "amounttype":
			s.AmountType = strings.ToLower(v)
		case "mktonly":
			s.MktOnly = truthy(v)
		case "taxonly":
			s.TaxOnly = truthy(v)
		case "inCategories":
			s.InCategories = splitList(v)
		case "outCategories":
			s.OutCategories = splitList(v)
		case "qtyKey":
			s.QtyKey = v
		case "startYear":
			if y, err := strconv.Atoi(v); err == nil {
				s.StartYear = y
			}
		case "rog":
			if d, err := decimal.NewFromString(v); err == nil {
				s.ROG = d
			}
		case "cardOrg", "trelloOrg":
			s.CardOrg = v
		}
	}
	return s
}

// BalanceInverted reports whether stated balances carry the opposite sign
// convention.
func (s Settings) BalanceInverted() bool {
	return s.BalanceType == "inverted"
}

// AmountInverted reports whether stated amounts carry the opposite sign
// convention.
func (s Settings) AmountInverted() bool {
	return s.AmountType == "inverted"
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	var res []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}
