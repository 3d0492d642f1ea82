package database

import (
	"github.com/rpupo63/portfolio-site-backend/models"
)

// SettingsPatch carries a shallow-merge settings update: a nil
// sub-document is retained, a non-nil one replaces the stored value
// wholesale.
type SettingsPatch struct {
	Studio  *models.StudioSettings  `json:"studio"`
	Contact *models.ContactSettings `json:"contact"`
}

type SettingsRepo struct {
	store *store
}

func NewSettingsRepo(store *store) *SettingsRepo {
	return &SettingsRepo{store}
}

// Get returns the settings singleton.
func (r *SettingsRepo) Get() (models.Settings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.doc.Settings, nil
}

// Update applies a shallow merge and flushes.
func (r *SettingsRepo) Update(patch SettingsPatch) (models.Settings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prev := r.store.doc.Settings
	if patch.Studio != nil {
		r.store.doc.Settings.Studio = *patch.Studio
	}
	if patch.Contact != nil {
		r.store.doc.Settings.Contact = *patch.Contact
	}
	if err := r.store.flush(); err != nil {
		r.store.doc.Settings = prev
		return models.Settings{}, err
	}
	return r.store.doc.Settings, nil
}

// UpdateStudio replaces the studio sub-document.
func (r *SettingsRepo) UpdateStudio(studio models.StudioSettings) (models.Settings, error) {
	return r.Update(SettingsPatch{Studio: &studio})
}

// UpdateContact replaces the contact sub-document.
func (r *SettingsRepo) UpdateContact(contact models.ContactSettings) (models.Settings, error) {
	return r.Update(SettingsPatch{Contact: &contact})
}
