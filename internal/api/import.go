package api

import (
	"errors"
	"log"
	"net/http"

	"disparo-dashboard/internal/importer"
	"disparo-dashboard/internal/ws"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	Service *importer.Service
	Hub     *ws.Hub
}

func NewImportHandler(service *importer.Service, hub *ws.Hub) *ImportHandler {
	return &ImportHandler{Service: service, Hub: hub}
}

// ImportContacts accepts a multipart upload and runs the import pipeline.
// The whole batch succeeds or fails together.
func (h *ImportHandler) ImportContacts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selecione um arquivo para importar"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro na leitura do arquivo"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	progress := func(pct int) {
		if h.Hub != nil {
			h.Hub.Broadcast(ws.Event{Type: "import_progress", Data: gin.H{
				"filename": fileHeader.Filename,
				"progress": pct,
			}})
		}
	}

	rows, err := h.Service.Import(c.Request.Context(), file, fileHeader.Filename, contentType, progress)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Formato não suportado. Use CSV, XLSX, XLS ou JSON."})
		case errors.Is(err, importer.ErrNoData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum dado encontrado no arquivo ou formato inválido"})
		default:
			log.Printf("Error importing %s: %v", fileHeader.Filename, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao processar o arquivo"})
		}
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: "import_completed", Data: gin.H{
			"filename": fileHeader.Filename,
			"rows":     rows,
		}})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Arquivo importado com sucesso!", "rows": rows})
}
