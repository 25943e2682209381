// gateway/convert.go
package gateway

// The CRM gateway speaks its own schema. The types here mirror that wire
// format and the to* functions adapt it into the local data model; nothing
// outside this package sees CRM field names.

import (
	"time"

	"github.com/pingwise/clinic-api/model"
)

type crmLoginResponse struct {
	AccessToken string `json:"access_token"`
	Account     struct {
		UID         string `json:"uid"`
		DisplayName string `json:"display_name"`
		Mail        string `json:"mail"`
		AccessLevel string `json:"access_level"`
	} `json:"account"`
}

func (r *crmLoginResponse) toAuthResult() *model.AuthResult {
	role := "staff"
	if r.Account.AccessLevel == "owner" || r.Account.AccessLevel == "administrator" {
		role = "admin"
	}
	return &model.AuthResult{
		Token: r.AccessToken,
		User: &model.User{
			ID:    r.Account.UID,
			Name:  r.Account.DisplayName,
			Email: r.Account.Mail,
			Role:  role,
		},
	}
}

type crmHealthResponse struct {
	State   string `json:"state"`
	Release string `json:"release"`
}

func (r *crmHealthResponse) toGatewayHealth() *model.GatewayHealth {
	return &model.GatewayHealth{
		Status:    r.State,
		Version:   r.Release,
		CheckedAt: time.Now(),
	}
}

type crmReportsResponse struct {
	Items []crmReport `json:"items"`
}

type crmReport struct {
	UID      string `json:"uid"`
	Caption  string `json:"caption"`
	Group    string `json:"group"`
	RangeLo  int64  `json:"range_lo"` // epoch seconds
	RangeHi  int64  `json:"range_hi"`
	Measures []struct {
		Caption string  `json:"caption"`
		Amount  float64 `json:"amount"`
		Suffix  string  `json:"suffix"`
	} `json:"measures"`
}

func (r *crmReportsResponse) toReports() []*model.Report {
	reports := make([]*model.Report, 0, len(r.Items))
	for _, item := range r.Items {
		report := &model.Report{
			ID:          item.UID,
			Title:       item.Caption,
			Category:    item.Group,
			PeriodStart: time.Unix(item.RangeLo, 0).UTC(),
			PeriodEnd:   time.Unix(item.RangeHi, 0).UTC(),
		}
		for _, m := range item.Measures {
			report.Metrics = append(report.Metrics, model.Metric{
				Label: m.Caption,
				Value: m.Amount,
				Unit:  m.Suffix,
			})
		}
		reports = append(reports, report)
	}
	return reports
}

type crmWalletResponse struct {
	AmountMinor int64  `json:"amount_minor"`
	CurrencyISO string `json:"currency_iso"`
}

func (r *crmWalletResponse) toWalletBalance() *model.WalletBalance {
	return &model.WalletBalance{
		BalanceCents: r.AmountMinor,
		Currency:     r.CurrencyISO,
		FetchedAt:    time.Now(),
	}
}
