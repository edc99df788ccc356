package go_wcpay

// TransformPrice converts amount from the store's configured minor-unit
// precision into the fixed precision the payment SDK expects.
//
// The scale factor is 10^(targetDecimals-sourceMinorUnit). All arithmetic
// is integer; when down-scaling does not divide evenly the result is
// rounded half away from zero, so a value never silently loses required
// precision to truncation.
func TransformPrice(amount int64, sourceMinorUnit, targetDecimals int) int64 {
	if sourceMinorUnit < 0 {
		sourceMinorUnit = 0
	}
	if targetDecimals < 0 {
		targetDecimals = 0
	}
	switch {
	case targetDecimals == sourceMinorUnit:
		return amount
	case targetDecimals > sourceMinorUnit:
		return amount * pow10(targetDecimals-sourceMinorUnit)
	default:
		return divRound(amount, pow10(sourceMinorUnit-targetDecimals))
	}
}

// InversePrice converts a wallet-precision amount back into the store's
// minor-unit precision. It is the inverse scaling of TransformPrice.
func InversePrice(amount int64, sourceMinorUnit, targetDecimals int) int64 {
	return TransformPrice(amount, targetDecimals, sourceMinorUnit)
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// divRound divides a by b rounding half away from zero. b > 0.
func divRound(a, b int64) int64 {
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}
