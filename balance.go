package khata

// CurrentBalance derives a user's displayed balance: the profile's opening
// balance plus the sum of signed transaction amounts, evaluated over the full
// list every time. It is a pure fold, so it is order-independent and can
// never drift from the stored list. No intermediate rounding takes place;
// two-decimal rounding happens only at presentation.
func CurrentBalance(p Profile, txns []Transaction) Amount {
	balance := p.CurrentBalance
	for _, tx := range txns {
		balance = balance.Add(tx.Signed())
	}
	return balance
}

// NetBalance sums the signed amounts of a transaction subset, without any
// opening baseline. It is used for per-counterparty ledgers.
func NetBalance(txns []Transaction) Amount {
	var net Amount
	for _, tx := range txns {
		net = net.Add(tx.Signed())
	}
	return net
}
