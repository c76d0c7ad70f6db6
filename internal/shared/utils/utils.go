// Утилитарные функции общего назначения
package utils

// Ptr возвращает указатель на копию v. Удобно для опциональных полей запросов.
func Ptr[T any](v T) *T {
	return &v
}

// Deref возвращает значение по указателю или def, если указатель nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// CeilDiv делит a на b с округлением вверх. При b <= 0 возвращает 0.
func CeilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
