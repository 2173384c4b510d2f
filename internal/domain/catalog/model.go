package catalog

// Service es un servicio de grooming ofrecido por la spa.
type Service struct {
	ID            string
	Name          string // title case
	DurationHours float64
	PriceCents    int64
}
