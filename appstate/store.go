package appstate

import (
	"log"
	"sync"
)

// Persistence keys. The "ict:" prefix matches the dashboard's historic
// storage naming so existing state files keep working.
const (
	keyFiat      = "ict:fiat"
	keyDays      = "ict:days"
	keyDark      = "ict:dark"
	keyLanguage  = "ict:lang"
	keyFavorites = "ict:favs"
)

// Store holds the user-facing dashboard state: selected fiat currency,
// chart day range, theme, language, search text and the favorites
// watchlist. Every mutation persists through the injected Persister
// before returning, so a crash never loses a toggle.
//
// The fetch/conversion core never touches this type; it exists so the
// UI shell stays free of ad-hoc globals.
type Store struct {
	mu        sync.RWMutex
	persister Persister

	fiat   string
	days   int
	dark   bool
	lang   string
	search string

	// favorites preserves insertion order for display stability
	favorites []string
	favSet    map[string]struct{}
}

// NewStore creates a state store seeded from persisted values, with
// the dashboard defaults for anything not yet saved
func NewStore(persister Persister) *Store {
	s := &Store{
		persister: persister,
		fiat:      "USD",
		days:      7,
		lang:      "id",
		favSet:    make(map[string]struct{}),
	}

	s.load(keyFiat, &s.fiat)
	s.load(keyDays, &s.days)
	s.load(keyDark, &s.dark)
	s.load(keyLanguage, &s.lang)

	var favorites []string
	s.load(keyFavorites, &favorites)
	for _, id := range favorites {
		if _, dup := s.favSet[id]; !dup {
			s.favorites = append(s.favorites, id)
			s.favSet[id] = struct{}{}
		}
	}

	return s
}

func (s *Store) load(key string, dest any) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Load(key, dest); err != nil && err != ErrNotFound {
		log.Printf("State: failed to load %s: %v", key, err)
	}
}

func (s *Store) persist(key string, value any) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(key, value); err != nil {
		log.Printf("State: failed to persist %s: %v", key, err)
	}
}

// Fiat returns the selected display currency code
func (s *Store) Fiat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fiat
}

// SetFiat selects the display currency and persists it
func (s *Store) SetFiat(fiat string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fiat = fiat
	s.persist(keyFiat, fiat)
}

// Days returns the selected chart day range
func (s *Store) Days() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days
}

// SetDays selects the chart day range and persists it
func (s *Store) SetDays(days int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = days
	s.persist(keyDays, days)
}

// Dark returns the dark-theme flag
func (s *Store) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// SetDark sets the dark-theme flag and persists it
func (s *Store) SetDark(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
	s.persist(keyDark, dark)
}

// Language returns the UI language code
func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage sets the UI language and persists it
func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	s.persist(keyLanguage, lang)
}

// Search returns the current coin search text
func (s *Store) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// SetSearch sets the search text. Search is ephemeral and not persisted.
func (s *Store) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// IsFavorite reports whether the coin id is on the watchlist
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favSet[id]
	return ok
}

// Favorites returns the watchlist in insertion order
func (s *Store) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// ToggleFavorite adds or removes a coin from the watchlist, persists
// the new set immediately and reports whether the coin is now favorited
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favSet[id]; ok {
		delete(s.favSet, id)
		for i, fav := range s.favorites {
			if fav == id {
				s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
				break
			}
		}
		s.persist(keyFavorites, s.favorites)
		return false
	}

	s.favSet[id] = struct{}{}
	s.favorites = append(s.favorites, id)
	s.persist(keyFavorites, s.favorites)
	return true
}
