package expense

import (
	"context"
	"time"

	"github.com/xiebiao/shiptrack/internal/domain/expense"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// ManageReferenceUseCase 费用类别与供应商主数据用例
type ManageReferenceUseCase struct {
	expenseRepo expense.Repository
}

// NewManageReferenceUseCase 创建用例
func NewManageReferenceUseCase(expenseRepo expense.Repository) *ManageReferenceUseCase {
	return &ManageReferenceUseCase{expenseRepo: expenseRepo}
}

// CategoryResponse 费用类别DTO
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategory 创建费用类别
func (uc *ManageReferenceUseCase) CreateCategory(ctx context.Context, name, description string) (*CategoryResponse, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "类别名称不能为空")
	}

	c := &expense.Category{Name: name, Description: description}
	if err := uc.expenseRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

// ListCategories 查询全部费用类别
func (uc *ManageReferenceUseCase) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := uc.expenseRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		list[i] = CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return list, nil
}

// VendorResponse 供应商DTO
type VendorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// CreateVendor 创建供应商
func (uc *ManageReferenceUseCase) CreateVendor(ctx context.Context, name, contactInfo string) (*VendorResponse, error) {
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "供应商名称不能为空")
	}

	v := &expense.Vendor{Name: name, ContactInfo: contactInfo}
	if err := uc.expenseRepo.CreateVendor(ctx, v); err != nil {
		return nil, err
	}
	return &VendorResponse{ID: v.ID, Name: v.Name, ContactInfo: v.ContactInfo}, nil
}

// ListVendors 查询全部供应商
func (uc *ManageReferenceUseCase) ListVendors(ctx context.Context) ([]VendorResponse, error) {
	vendors, err := uc.expenseRepo.ListVendors(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		list[i] = VendorResponse{ID: v.ID, Name: v.Name, ContactInfo: v.ContactInfo}
	}
	return list, nil
}

// parseDate 解析YYYY-MM-DD日期
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "日期格式错误,应为YYYY-MM-DD")
	}
	return t, nil
}
