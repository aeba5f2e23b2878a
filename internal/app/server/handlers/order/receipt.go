package order

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/pkg/errorx"
	"tourshop/internal/app/pkg/ginx"
)

// maxUploadBytes 读取上传文件的硬上限，业务上限由凭证模块校验
const maxUploadBytes = 32 << 20

// UploadReceipt godoc
// @Summary      上传付款凭证
// @Description  multipart 字段 file；覆盖已有凭证，不修改订单状态
// @Tags         orders
// @Accept       multipart/form-data
// @Produce      json
// @Param        ref path string true "订单ID或订单号"
// @Param        file formData file true "凭证文件（png/jpg/jpeg/webp/pdf）"
// @Success      200 {object} ginx.Response{data=response.OrderResponse}
// @Failure      400 {object} ginx.Response "InvalidReceipt"
// @Failure      404 {object} ginx.Response "OrderNotFound"
// @Failure      502 {object} ginx.Response "StorageFailure"
// @Security     BearerAuth
// @Router       /orders/{ref}/receipt [post]
func (h *OrderHandler) UploadReceipt(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	ref, ok := h.orderRef(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		ginx.BadRequest(c, "file is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		ginx.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	blob, err := readUpload(f, maxUploadBytes)
	if err != nil {
		h.fail(c, err)
		return
	}

	order, err := h.orderService.AttachReceipt(c.Request.Context(), actor, ref, blob, header.Filename)
	if err != nil {
		h.fail(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}

// readUpload 读取上传内容，超过 limit 时拒绝而不是截断
func readUpload(r io.Reader, limit int64) ([]byte, error) {
	blob, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errorx.ErrInvalidReceipt.WithMessage("cannot read uploaded file")
	}
	if int64(len(blob)) > limit {
		return nil, errorx.ErrInvalidReceipt.WithMessage("receipt file exceeds %d bytes", limit)
	}
	return blob, nil
}

// DownloadReceipt 下载凭证文件（公开 URL）
// GET /api/v1/receipts/:name
func (h *OrderHandler) DownloadReceipt(c *gin.Context) {
	name := c.Param("name")
	rc, err := h.orderService.OpenReceipt(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control": "private, max-age=300",
	})
}
