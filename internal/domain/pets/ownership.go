package pets

import "context"

// OwnerOf expone el cliente dueño de una mascota sin pasar por la política.
// Bookings lo usa para resolver booking -> pet -> client (evita ciclos de imports).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.ClientID, nil
}
