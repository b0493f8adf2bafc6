package entity

// Optional qisman yangilash maydoni: "berilmagan" va "bo'sh qiymat berilgan" farqlanadi
type Optional[T any] struct {
	value T
	set   bool
}

// Set qiymat berilgan maydon yaratish
func Set[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

// Unset berilmagan maydon (o'zgarishsiz qoldiriladi)
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet maydon berilganmi
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Get qiymat va berilganlik belgisini olish
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Apply berilgan bo'lsa yangi qiymatni, aks holda eskisini qaytarish
func (o Optional[T]) Apply(current T) T {
	if !o.set {
		return current
	}
	return o.value
}
