package mapper

import (
	"Reelhouse/internal/dto"
	"Reelhouse/internal/models"
	"Reelhouse/internal/services"
)

func ToSnapshotGetDTO(snapshot *models.Snapshot) *dto.SnapshotGetDTO {
	return &dto.SnapshotGetDTO{
		ID:          snapshot.ID,
		ProjectID:   snapshot.ProjectID,
		Category:    snapshot.Category,
		Folder:      snapshot.Folder,
		BaseName:    snapshot.BaseName,
		Extension:   snapshot.Extension,
		Version:     snapshot.Version,
		ActivePath:  snapshot.ActivePath,
		HistoryPath: snapshot.HistoryPath,
		Action:      snapshot.Action,
		SHA256:      snapshot.SHA256,
		Size:        snapshot.Size,
		CreatedAt:   snapshot.CreatedAt,
	}
}

func ToSnapshotGetDTOs(snapshots []models.Snapshot) []dto.SnapshotGetDTO {
	snapshotDTOs := make([]dto.SnapshotGetDTO, 0, len(snapshots))
	for i := range snapshots {
		snapshotDTOs = append(snapshotDTOs, *ToSnapshotGetDTO(&snapshots[i]))
	}
	return snapshotDTOs
}

func ToHistoryEntryDTOs(entries []services.HistoryEntry) []dto.HistoryEntryDTO {
	entryDTOs := make([]dto.HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		entryDTOs = append(entryDTOs, dto.HistoryEntryDTO{
			Name:       entry.Name,
			Path:       entry.Path,
			Version:    entry.Version,
			Size:       entry.Size,
			ModifiedAt: entry.ModifiedAt,
		})
	}
	return entryDTOs
}

func ToFolderResultDTO(result *services.FolderResult, err error) *dto.FolderResultDTO {
	resultDTO := &dto.FolderResultDTO{Folders: []string{}, Created: []string{}, Seeded: []string{}}
	if result != nil {
		resultDTO.Kind = string(result.Kind)
		if result.Folders != nil {
			resultDTO.Folders = result.Folders
		}
		if result.Created != nil {
			resultDTO.Created = result.Created
		}
		if result.Seeded != nil {
			resultDTO.Seeded = result.Seeded
		}
	}
	if err != nil {
		resultDTO.Error = err.Error()
	}
	return resultDTO
}
