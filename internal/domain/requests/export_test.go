package requests

import "time"

func SetNow(s *Service, now func() time.Time) { s.now = now }

func SetNewID(s *Service, newID func() string) { s.newID = newID }
