package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a line based on account type.
// The result is positive when the line increases the account's normal balance.
func CalculateSignedAmount(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// NormalBalance converts debit and credit totals into a balance signed in the
// account's normal direction.
func NormalBalance(debitTotal, creditTotal decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// BalanceChanges sums the signed effect of each line per account.
func BalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s not found for line %s", line.AccountID, line.LineID)
		}
		signed, err := CalculateSignedAmount(line.Debit, line.Credit, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", line.LineID, err)
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}

// EquationResidual returns assets - liabilities - equity - (revenue - expenses) over a set of
// normal-signed balances. A ledger built from balanced entries always yields zero.
func EquationResidual(balances map[domain.AccountType]decimal.Decimal) decimal.Decimal {
	return balances[domain.Asset].
		Sub(balances[domain.Liability]).
		Sub(balances[domain.Equity]).
		Sub(balances[domain.Revenue]).
		Add(balances[domain.Expense])
}
